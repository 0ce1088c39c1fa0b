// Package logger configures the application's logging.
//
// It uses *ZeroLog* for structured logging: human-friendly console output
// during development, JSON to stderr everywhere else.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application's main logger for the given environment.
//
// In "dev" the logger writes colorized console lines; in any other
// environment it emits JSON, one object per line, suitable for log
// shippers. Every entry carries a timestamp and the service name.
func New(env string) zerolog.Logger {
	var logger zerolog.Logger

	if env == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.With().
		Timestamp().
		Str("service", "docmount").
		Logger()
}

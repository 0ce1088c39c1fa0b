// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded from a
// `.env` file), loads them into structured Go types, and validates that
// required values are present so the app fails fast on bad or missing
// config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values.
//   - Provide sane defaults for optional config blocks (e.g. docs).
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if one
	// exists, before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from; nested struct
// fields use dot notation, so DOCMOUNT_SERVER.PORT maps to Config.Server.Port.
// The `validate:"required"` tags are enforced by go-playground/validator.
//
// Docs is a pointer because it is optional; when absent, defaults are
// injected at load time.
type Config struct {
	Primary Primary      `koanf:"primary" validate:"required"`
	Server  ServerConfig `koanf:"server" validate:"required"`
	Docs    *DocsConfig  `koanf:"docs"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeout values are interpreted as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DocsConfig controls where the documentation endpoints are mounted and
// where the UI bundle lives on disk.
//
// An empty SpecPath or UIPath disables that endpoint. UIDir falls back to
// the bundled default when empty.
type DocsConfig struct {
	SpecPath string `koanf:"spec_path"`
	UIPath   string `koanf:"ui_path"`
	UIDir    string `koanf:"ui_dir"`
}

// DefaultDocsConfig returns the docs block used when the environment does
// not provide one: spec at /openapi, UI at /openapi/ui, bundle under
// static/swagger-ui.
func DefaultDocsConfig() *DocsConfig {
	return &DocsConfig{
		SpecPath: "/openapi",
		UIPath:   "/openapi/ui",
		UIDir:    "static/swagger-ui",
	}
}

// Load reads configuration from environment variables, unmarshals it into
// Config, validates it, and applies defaults for the optional docs block.
//
// Env vars use the DOCMOUNT_ prefix with "." nesting, for example:
//
//	DOCMOUNT_PRIMARY.ENV=dev
//	DOCMOUNT_SERVER.PORT=8080
//	DOCMOUNT_DOCS.SPEC_PATH=/openapi
//
// Load logs fatally on malformed or incomplete config; the process exits
// rather than running half-configured.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("DOCMOUNT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DOCMOUNT_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	// Inject the default docs block if the environment didn't provide one.
	// The pointer field being nil means "missing".
	if mainConfig.Docs == nil {
		mainConfig.Docs = DefaultDocsConfig()
	}
	if mainConfig.Docs.UIDir == "" {
		mainConfig.Docs.UIDir = DefaultDocsConfig().UIDir
	}

	return mainConfig, nil
}

// Package server defines the core Server struct that composes the app's
// main dependencies.
//
// It contains the initialization logic to spin up the HTTP server and
// handles graceful shutdowns.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/docmount/docmount/internal/config"
	"github.com/rs/zerolog"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds the config, the logger, and an
// internal *http.Server used to listen and serve requests.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// httpServer is the standard library HTTP server instance.
	// It is configured in SetupHTTPServer and started in Start().
	httpServer *http.Server
}

// New constructs a Server around the loaded configuration and logger.
//
// It does NOT start the HTTP server; that is done in SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger) *Server {
	return &Server{
		Config: cfg,
		Logger: logger,
	}
}

// SetupHTTPServer configures the internal net/http server.
//
// The actual router is passed in as handler. Timeouts come from config and
// are interpreted as seconds; they protect against slow clients and
// resource exhaustion.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server.
//
// It requires SetupHTTPServer to be called first. It blocks until the
// server stops or errors; graceful shutdown happens by calling Shutdown
// from a signal handler.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server: it stops accepting new
// connections and waits for in-flight requests until the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}

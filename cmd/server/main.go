// Command server runs the docmount HTTP service: a health endpoint plus
// OpenAPI documentation endpoints generated from the live route table.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docmount/docmount/internal/config"
	"github.com/docmount/docmount/internal/docs"
	"github.com/docmount/docmount/internal/logger"
	"github.com/docmount/docmount/internal/router"
	"github.com/docmount/docmount/internal/server"
)

// shutdownTimeout bounds how long in-flight requests may take to finish
// once a termination signal arrives.
const shutdownTimeout = 10 * time.Second

func main() {
	writeSpec := flag.String("write-spec", "", "write the generated OpenAPI spec to the given file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// config.Load exits on its own for malformed config; this guards
		// future error-returning paths.
		os.Exit(1)
	}

	log := logger.New(cfg.Primary.Env)

	s := server.New(cfg, &log)
	e := router.New(s)

	// Offline mode: render the same document the live spec endpoint would
	// serve and exit. Errors propagate here, unlike the live endpoint.
	// The generator comes from the same constructor the router wires into
	// the endpoint, so the file matches the live response exactly.
	if *writeSpec != "" {
		if err := docs.WriteSpecFile(router.SpecGenerator(e, s), *writeSpec); err != nil {
			log.Fatal().Err(err).Str("file", *writeSpec).Msg("failed to write OpenAPI spec")
		}

		log.Info().Str("file", *writeSpec).Msg("OpenAPI spec written")
		return
	}

	s.SetupHTTPServer(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

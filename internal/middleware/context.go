package middleware

import (
	"context"

	"github.com/docmount/docmount/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LoggerKey is the key used for storing the request-scoped logger in Echo
// context and in the Go request context.
const LoggerKey = "logger"

// ContextEnhancer enriches request context.
//
// It builds a request-scoped logger carrying request_id, method, path, and
// ip, then stores that logger in both the Echo context and the Go request
// context so handlers and downstream code log with correlation fields for
// free.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer using the app Server container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an Echo middleware that attaches the request-scoped
// logger. It expects the RequestID middleware to have run first; without it
// the request_id field is empty.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			// c.Path() is the route template (e.g. "/users/:id"),
			// not the raw URL.
			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetLogger returns the request-scoped logger from Echo context, falling
// back to a disabled logger when the enhancer did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	disabled := zerolog.Nop()
	return &disabled
}

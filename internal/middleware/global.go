package middleware

import (
	"net/http"

	"github.com/docmount/docmount/internal/errs"
	"github.com/docmount/docmount/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups global middleware and the global error handler.
//
// A struct so middleware functions can read shared dependencies from
// *server.Server, especially config (CORS origins, env).
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle around the
// application container.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger returns Echo's request logger middleware with a custom
// LogValuesFunc producing one structured zerolog line per request, with
// severity based on status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, Echo has not written the
			// final status yet; the global error handler decides it later.
			// Derive the status from the error type so error requests do
			// not log as 200.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &httpErr) {
					statusCode = httpErr.Status
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware, turning handler panics
// into 500 responses instead of crashing the process.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every handler error ends up here and is translated into the errs.HTTPError
// JSON shape. The original error is logged with the request-scoped logger;
// clients receive the sanitized message.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) && echoErr.Code == http.StatusNotFound {
			// Unknown route: convert Echo's 404 into our NotFound shape.
			err = errs.NewNotFoundError("Route not found")
		} else if !errors.As(err, &echoErr) {
			// Unknown error type. Safe 500.
			err = errs.NewInternalServerError()
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		// Echo error messages can be any type; normalize to string.
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
		message = http.StatusText(http.StatusInternalServerError)
	}

	logger := GetLogger(c)

	logger.Error().
		Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	// Only write a response if the handler hasn't already.
	if !c.Response().Committed {
		_ = c.JSON(status, errs.HTTPError{
			Code:    code,
			Message: message,
			Status:  status,
		})
	}
}

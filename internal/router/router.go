// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups, mapping
// specific paths to their corresponding handlers.
package router

import (
	"github.com/docmount/docmount/internal/handler"
	"github.com/docmount/docmount/internal/middleware"
	"github.com/docmount/docmount/internal/server"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance with the full middleware stack and all
// routes registered, ready to hand to Server.SetupHTTPServer.
func New(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	m := middleware.NewMiddlewares(s)

	// All handler errors funnel into the global error handler.
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: recovery first, then correlation, then the
	// request-scoped logger the request logger reads from.
	e.Use(m.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())

	h := handler.NewHandlers(s)
	registerSystemRoutes(e, s, h)

	return e
}

// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests and returns responses, acting as the interface
// between the HTTP request and the rest of the application.
package handler

import (
	"github.com/docmount/docmount/internal/server"
)

// Handler is the base handler type that holds shared application
// dependencies.
//
// It is embedded by concrete handlers (e.g. HealthHandler) so they can
// access shared resources via *server.Server (config, logger).
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
//
// It returns the struct by value; the struct only contains a pointer field,
// so copying is cheap and still points to the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

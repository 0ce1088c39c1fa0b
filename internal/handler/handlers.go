package handler

import (
	"github.com/docmount/docmount/internal/server"
)

// Handlers is a container that groups all HTTP handlers.
//
// Router setup receives one object instead of many; handlers added later
// slot in here without changing the wiring pattern. The documentation
// endpoints are not handlers in this container: they are mounted onto the
// router by the docs package at setup time.
type Handlers struct {
	Health *HealthHandler // Health serves service health endpoints.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
	}
}

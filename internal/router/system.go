package router

import (
	"github.com/docmount/docmount/internal/docs"
	"github.com/docmount/docmount/internal/handler"
	"github.com/docmount/docmount/internal/openapi"
	"github.com/docmount/docmount/internal/server"
	"github.com/labstack/echo/v4"
)

// serviceVersion tags the generated OpenAPI document.
const serviceVersion = "1.0.0"

// registerSystemRoutes registers "system" endpoints that are not part of
// business logic:
//  1. Health endpoint
//  2. OpenAPI spec endpoint (generated per request from the route table)
//  3. Docs UI endpoint (static bundle pre-wired to the spec endpoint)
func registerSystemRoutes(e *echo.Echo, s *server.Server, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	e.GET("/status", h.Health.CheckHealth)

	registerDocs(e, s)
}

// SpecGenerator builds the OpenAPI generator the spec endpoint serves from,
// carrying the service metadata and excluding the spec endpoint itself from
// the generated document.
//
// It is the single constructor for this router's generator: offline
// consumers (the -write-spec utility) use it too, so their output matches
// the live endpoint byte for byte for the same route set.
func SpecGenerator(e *echo.Echo, s *server.Server) *openapi.Generator {
	gen := openapi.NewGenerator(e, "docmount", serviceVersion)
	gen.Description = "API documentation endpoints generated from the live route table"

	if dc := s.Config.Docs; dc != nil && dc.SpecPath != "" {
		gen.Exclude(docs.NormalizePath(dc.SpecPath))
	}

	return gen
}

// registerDocs mounts the documentation endpoints from config.
//
// The spec is generated by introspecting this router's own route table; the
// spec endpoint excludes itself from the generated document so the docs
// describe the API, not the docs machinery.
func registerDocs(e *echo.Echo, s *server.Server) {
	cfg := docs.Config{}
	if dc := s.Config.Docs; dc != nil {
		cfg = docs.Config{
			SpecPath: dc.SpecPath,
			UIPath:   dc.UIPath,
			UIDir:    dc.UIDir,
		}
	}

	docs.AddEndpoints(e, SpecGenerator(e, s), cfg, s.Logger)
}

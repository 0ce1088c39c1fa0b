// Package openapi generates an OpenAPI document by introspecting the routes
// registered on a live Echo router.
//
// The generator implements docs.SpecSource: every call re-reads the router's
// route table, so the document always reflects the routes registered at
// request time. Nothing is cached.
package openapi

import (
	"encoding/json"
	"strings"

	"github.com/labstack/echo/v4"
)

// document is the rendered OpenAPI 3 root object.
type document struct {
	OpenAPI string                          `json:"openapi"`
	Info    info                            `json:"info"`
	Paths   map[string]map[string]operation `json:"paths"`
}

// info describes the documented service.
type info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// operation is a minimal OpenAPI operation object. Route introspection only
// yields methods and paths, so responses carry a single default entry.
type operation struct {
	OperationID string              `json:"operationId"`
	Parameters  []parameter         `json:"parameters,omitempty"`
	Responses   map[string]response `json:"responses"`
}

// parameter describes a path parameter extracted from an Echo route
// template (":id" segments).
type parameter struct {
	Name     string            `json:"name"`
	In       string            `json:"in"`
	Required bool              `json:"required"`
	Schema   map[string]string `json:"schema"`
}

type response struct {
	Description string `json:"description"`
}

// Generator renders an OpenAPI document from an Echo router's route table.
type Generator struct {
	echo *echo.Echo

	// Title and Version fill the document's info block.
	Title   string
	Version string

	// Description is optional service metadata.
	Description string

	excluded map[string]struct{}
}

// NewGenerator creates a Generator for e. The documentation mounts
// themselves are usually passed to Exclude so the document does not
// describe its own serving machinery.
func NewGenerator(e *echo.Echo, title, version string) *Generator {
	return &Generator{
		echo:     e,
		Title:    title,
		Version:  version,
		excluded: make(map[string]struct{}),
	}
}

// Exclude removes the given route paths from generated documents. Paths are
// matched against the raw Echo route template, before parameter rewriting.
func (g *Generator) Exclude(paths ...string) *Generator {
	for _, p := range paths {
		g.excluded[p] = struct{}{}
	}
	return g
}

// OpenAPISpec renders the current route table as an OpenAPI 3 JSON
// document. It reports absent when the router has no documentable routes or
// the document cannot be marshalled.
func (g *Generator) OpenAPISpec() (string, bool) {
	paths := make(map[string]map[string]operation)

	for _, route := range g.echo.Routes() {
		if g.skip(route) {
			continue
		}

		path := rewritePath(route.Path)
		if paths[path] == nil {
			paths[path] = make(map[string]operation)
		}

		paths[path][strings.ToLower(route.Method)] = operation{
			OperationID: operationID(route.Method, route.Path),
			Parameters:  pathParameters(route.Path),
			Responses: map[string]response{
				"200": {Description: "Successful response"},
			},
		}
	}

	if len(paths) == 0 {
		return "", false
	}

	doc := document{
		OpenAPI: "3.0.3",
		Info: info{
			Title:       g.Title,
			Description: g.Description,
			Version:     g.Version,
		},
		Paths: paths,
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", false
	}

	return string(out), true
}

// skip filters out excluded mounts, static wildcard mounts, and Echo's
// internal catch-all routes.
func (g *Generator) skip(route *echo.Route) bool {
	if _, ok := g.excluded[route.Path]; ok {
		return true
	}

	// Static mounts register "<prefix>/*"; they are serving machinery, not
	// part of the API surface.
	if strings.Contains(route.Path, "*") {
		return true
	}

	return false
}

// rewritePath converts an Echo route template to an OpenAPI path template:
// "/users/:id" becomes "/users/{id}".
func rewritePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// pathParameters extracts ":name" segments as required path parameters.
func pathParameters(path string) []parameter {
	var params []parameter
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ":") {
			params = append(params, parameter{
				Name:     segment[1:],
				In:       "path",
				Required: true,
				Schema:   map[string]string{"type": "string"},
			})
		}
	}
	return params
}

// operationID derives a stable identifier like "get_status" or
// "get_users_id" from the method and route template.
func operationID(method, path string) string {
	cleaned := strings.NewReplacer("/", "_", ":", "", "-", "_").Replace(strings.Trim(path, "/"))
	if cleaned == "" {
		cleaned = "root"
	}
	return strings.ToLower(method) + "_" + cleaned
}

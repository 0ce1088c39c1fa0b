// Package docs mounts API documentation endpoints onto an existing Echo router.
//
// It adds two independent features, each enabled by its own mount path:
//   - a spec endpoint that serves a machine-readable OpenAPI document,
//     regenerated on every request by asking the router for its current
//     route description
//   - a documentation UI endpoint that serves a pre-built static viewer,
//     pre-wired at install time to the configured spec path
//
// Route introspection is an injected capability (SpecSource), so the package
// works against any generator and can be tested with a stub.
package docs

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	// TemplateFile is the UI bundle's template, containing the spec path
	// placeholder. Read-only input; part of the vendored bundle.
	TemplateFile = "template.html"

	// EntryFile is the rendered UI entry page. Overwritten on every
	// AddEndpoints call.
	EntryFile = "index.html"

	// specPlaceholder is the literal token in TemplateFile replaced with
	// the normalized spec path. Plain text substitution, no escaping.
	specPlaceholder = "{{openapi}}"
)

// specUnavailableMessage is the response body when the source cannot
// produce a specification. The spec handler always responds; it never
// surfaces the failure as an unhandled error.
const specUnavailableMessage = "OpenAPI specification is currently unavailable"

// SpecSource provides the current API description for the router being
// documented.
//
// OpenAPISpec returns the specification as a JSON string. The second return
// is false when no specification can be produced right now; that is an
// expected outcome, not an error. The source is queried fresh on every
// request to the spec endpoint and must be safe for concurrent use.
type SpecSource interface {
	OpenAPISpec() (string, bool)
}

// Config holds the mount paths for the documentation endpoints.
//
// An empty path disables that feature. Config is passed by value and never
// retained: the router keeps only the handlers derived from it.
type Config struct {
	// SpecPath is the mount path of the machine-readable spec endpoint.
	// Empty disables the endpoint.
	SpecPath string

	// UIPath is the mount path of the documentation UI. Empty disables the
	// UI. The UI also requires SpecPath: a viewer with nothing to point at
	// is skipped.
	UIPath string

	// UIDir is the directory holding the vendored UI bundle, including
	// TemplateFile. Empty falls back to the DefaultConfig value.
	UIDir string
}

// DefaultConfig returns the standard documentation setup: spec at /openapi,
// UI at /openapi/ui, bundle under static/swagger-ui. Each call returns a
// fresh value; there is no shared mutable default.
func DefaultConfig() Config {
	return Config{
		SpecPath: "/openapi",
		UIPath:   "/openapi/ui",
		UIDir:    filepath.Join("static", "swagger-ui"),
	}
}

// NormalizePath makes a mount path absolute. A path already starting with
// "/" is returned unchanged, so the function is idempotent. Callers must not
// pass an empty path; empty means the feature is disabled and normalization
// is skipped entirely.
func NormalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// AddEndpoints registers the documentation endpoints on e.
//
// The spec endpoint and the UI are independent: a disabled or failed UI
// installation never affects the spec endpoint, and vice versa. Disabled
// features are logged and skipped, not errors.
//
// Calling AddEndpoints again re-registers the routes (Echo's last
// registration wins) and re-renders the UI entry file against the new
// configuration. The UI installation step reads and rewrites files in
// cfg.UIDir and is meant to run once at setup time; concurrent calls
// against the same directory are the caller's responsibility to avoid.
func AddEndpoints(e *echo.Echo, src SpecSource, cfg Config, log *zerolog.Logger) {
	specPath := ""
	if cfg.SpecPath == "" {
		log.Info().Msg("spec endpoint disabled: no spec path configured")
	} else {
		specPath = NormalizePath(cfg.SpecPath)
		registerSpecEndpoint(e, src, specPath)
		log.Info().Str("path", specPath).Msg("spec endpoint registered")
	}

	installUI(e, cfg, specPath, log)
}

// registerSpecEndpoint registers the GET handler serving the current spec.
//
// Per request the handler asks src for the current description. When the
// source reports absent, the handler responds 500 with a fixed message
// rather than returning an error: a client is always answered.
func registerSpecEndpoint(e *echo.Echo, src SpecSource, specPath string) {
	e.GET(specPath, func(c echo.Context) error {
		spec, ok := src.OpenAPISpec()
		if !ok {
			return c.String(http.StatusInternalServerError, specUnavailableMessage)
		}

		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(spec))
	})
}

// installUI renders the UI entry file and mounts the static bundle.
//
// Both the UI path and the spec path must be configured. The entry file is
// produced by substituting the spec path into the bundle's template; the
// write replaces any previous rendering. Any I/O failure aborts the
// installation before the static handler is mounted, leaving the rest of
// the router untouched.
func installUI(e *echo.Echo, cfg Config, specPath string, log *zerolog.Logger) {
	if cfg.UIPath == "" {
		log.Info().Msg("documentation UI disabled: no UI path configured")
		return
	}
	if specPath == "" {
		log.Info().Msg("documentation UI skipped: spec endpoint is disabled")
		return
	}

	uiPath := NormalizePath(cfg.UIPath)

	dir := cfg.UIDir
	if dir == "" {
		dir = DefaultConfig().UIDir
	}

	template, err := os.ReadFile(filepath.Join(dir, TemplateFile))
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("documentation UI not installed: cannot read template")
		return
	}

	rendered := strings.ReplaceAll(string(template), specPlaceholder, specPath)

	entryPath := filepath.Join(dir, EntryFile)
	if err := writeFileAtomic(entryPath, []byte(rendered)); err != nil {
		log.Error().Err(err).Str("file", entryPath).Msg("documentation UI not installed: cannot write entry file")
		return
	}

	e.Static(uiPath, dir)
	log.Info().Str("path", uiPath).Str("dir", dir).Msg("documentation UI registered")
}

// WriteSpecFile obtains the current specification from src and writes it to
// path, atomically and UTF-8 encoded.
//
// Unlike the live spec endpoint this utility has no caller waiting on an
// HTTP response, so failures propagate: an absent specification or a failed
// write returns an error.
func WriteSpecFile(src SpecSource, path string) error {
	spec, ok := src.OpenAPISpec()
	if !ok {
		return fmt.Errorf("no OpenAPI specification available for %s", path)
	}

	if err := writeFileAtomic(path, []byte(spec)); err != nil {
		return fmt.Errorf("failed to write OpenAPI specification: %w", err)
	}

	return nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so a failed write never leaves a half-written file
// at path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	// CreateTemp creates the file 0600; the rendered artifact is a static
	// asset and should carry normal file permissions after the rename.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}

package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource is a canned SpecSource for tests.
type stubSource struct {
	spec string
	ok   bool
}

func (s stubSource) OpenAPISpec() (string, bool) {
	return s.spec, s.ok
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// writeTemplate seeds a UI bundle directory with a template referencing the
// placeholder twice, so substitution of every occurrence is observable.
func writeTemplate(t *testing.T, dir string) {
	t.Helper()

	content := "<html><body>spec at {{openapi}} <a href=\"{{openapi}}\">spec</a></body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplateFile), []byte(content), 0o644))
}

func doGET(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/openapi", NormalizePath("openapi"))
	assert.Equal(t, "/openapi", NormalizePath("/openapi"))
	assert.Equal(t, "/a/b", NormalizePath("a/b"))

	// Idempotent: normalizing twice changes nothing.
	for _, p := range []string{"openapi", "/openapi", "docs/ui", "/"} {
		once := NormalizePath(p)
		assert.Equal(t, once, NormalizePath(once), "path %q", p)
	}
}

func TestSpecEndpointServesJSON(t *testing.T) {
	e := echo.New()
	src := stubSource{spec: `{"openapi":"3.0.3","paths":{}}`, ok: true}

	AddEndpoints(e, src, Config{SpecPath: "openapi"}, testLogger())

	rec := doGET(e, "/openapi")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
}

func TestSpecEndpointUnavailable(t *testing.T) {
	e := echo.New()

	AddEndpoints(e, stubSource{ok: false}, Config{SpecPath: "/openapi"}, testLogger())

	rec := doGET(e, "/openapi")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, specUnavailableMessage, rec.Body.String())
}

func TestSpecEndpointRecoversPerRequest(t *testing.T) {
	e := echo.New()

	// Source flips from absent to present between requests; the handler
	// re-evaluates it each time.
	src := &flippingSource{}
	AddEndpoints(e, src, Config{SpecPath: "/openapi"}, testLogger())

	require.Equal(t, http.StatusInternalServerError, doGET(e, "/openapi").Code)

	src.spec = `{"openapi":"3.0.3"}`
	require.Equal(t, http.StatusOK, doGET(e, "/openapi").Code)
}

type flippingSource struct {
	spec string
}

func (s *flippingSource) OpenAPISpec() (string, bool) {
	return s.spec, s.spec != ""
}

func TestDisabledSpecPath(t *testing.T) {
	e := echo.New()

	AddEndpoints(e, stubSource{spec: "{}", ok: true}, Config{}, testLogger())

	// No handler registered anywhere: Echo's default not-found applies.
	assert.Equal(t, http.StatusNotFound, doGET(e, "/openapi").Code)
	assert.Empty(t, e.Routes())
}

func TestUIInstallRendersEntryFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir)

	e := echo.New()
	AddEndpoints(e, stubSource{spec: "{}", ok: true}, Config{
		SpecPath: "/spec",
		UIPath:   "/docs",
		UIDir:    dir,
	}, testLogger())

	rendered, err := os.ReadFile(filepath.Join(dir, EntryFile))
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "/spec")
	assert.NotContains(t, string(rendered), specPlaceholder)

	// The static mount serves the rendered entry file.
	rec := doGET(e, "/docs/index.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/spec")

	// The template itself is untouched.
	template, err := os.ReadFile(filepath.Join(dir, TemplateFile))
	require.NoError(t, err)
	assert.Contains(t, string(template), specPlaceholder)

	// No stray temp files from the atomic write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUIPathNormalized(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir)

	e := echo.New()
	AddEndpoints(e, stubSource{spec: "{}", ok: true}, Config{
		SpecPath: "spec",
		UIPath:   "docs",
		UIDir:    dir,
	}, testLogger())

	assert.Equal(t, http.StatusOK, doGET(e, "/docs/index.html").Code)

	rendered, err := os.ReadFile(filepath.Join(dir, EntryFile))
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "/spec")
}

func TestAddEndpointsTwiceOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir)

	e := echo.New()
	src := stubSource{spec: "{}", ok: true}

	AddEndpoints(e, src, Config{SpecPath: "/spec-v1", UIPath: "/docs", UIDir: dir}, testLogger())
	AddEndpoints(e, src, Config{SpecPath: "/spec-v2", UIPath: "/docs", UIDir: dir}, testLogger())

	// The UI registered by the second call reflects the second spec path.
	rec := doGET(e, "/docs/index.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/spec-v2")
	assert.NotContains(t, rec.Body.String(), "/spec-v1")
}

func TestUIInstallMissingTemplate(t *testing.T) {
	dir := t.TempDir() // no template.html inside

	e := echo.New()
	AddEndpoints(e, stubSource{spec: "{}", ok: true}, Config{
		SpecPath: "/spec",
		UIPath:   "/docs",
		UIDir:    dir,
	}, testLogger())

	// Installation aborted: no entry file, no static mount.
	_, err := os.Stat(filepath.Join(dir, EntryFile))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, http.StatusNotFound, doGET(e, "/docs/index.html").Code)

	// The spec endpoint is unaffected.
	assert.Equal(t, http.StatusOK, doGET(e, "/spec").Code)
}

func TestUISkippedWithoutSpecPath(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir)

	e := echo.New()
	AddEndpoints(e, stubSource{spec: "{}", ok: true}, Config{
		UIPath: "/docs",
		UIDir:  dir,
	}, testLogger())

	// The UI is meaningless without a spec endpoint to point at.
	_, err := os.Stat(filepath.Join(dir, EntryFile))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, http.StatusNotFound, doGET(e, "/docs/index.html").Code)
}

func TestWriteSpecFile(t *testing.T) {
	spec := `{"openapi":"3.0.3","info":{"title":"t","version":"1"}}`
	src := stubSource{spec: spec, ok: true}

	e := echo.New()
	AddEndpoints(e, src, Config{SpecPath: "/openapi"}, testLogger())

	path := filepath.Join(t.TempDir(), "openapi.json")
	require.NoError(t, WriteSpecFile(src, path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)

	// File contents equal what the live endpoint serves for the same
	// route set.
	rec := doGET(e, "/openapi")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, rec.Body.String(), string(written))
}

func TestWriteSpecFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.json")

	// Absent spec propagates as an error.
	err := WriteSpecFile(stubSource{ok: false}, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no OpenAPI specification")

	// Unwritable destination propagates as an error.
	err = WriteSpecFile(stubSource{spec: "{}", ok: true},
		filepath.Join(t.TempDir(), "missing", "openapi.json"))
	require.Error(t, err)
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, writeFileAtomic(path, []byte("first")))
	require.NoError(t, writeFileAtomic(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	// Only the target file remains; temp files are cleaned up.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.Contains(entries[0].Name(), ".tmp-"))
}

func TestWriteFileAtomicPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, writeFileAtomic(path, []byte("<html></html>")))

	// The rendered artifact is world-readable like any shipped static
	// asset, not 0600 like the temp file it was staged through.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

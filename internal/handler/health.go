package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/docmount/docmount/internal/docs"
	"github.com/docmount/docmount/internal/middleware"
	"github.com/docmount/docmount/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a system endpoint that external systems can use to
// verify the service is alive and its dependencies are in order.
//
// The only local dependency this service has is the documentation UI bundle
// on disk; the health response reports whether it is installable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app
// dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// Response includes the overall status (healthy/degraded), UTC timestamp,
// environment, and a checks map. It returns 200 OK when all checks pass and
// 503 Service Unavailable otherwise. A missing UI bundle degrades the
// service but does not fail the endpoint: the spec endpoint still works
// without it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	// UI bundle check: the template must exist and be readable for the
	// docs UI to install. An empty UIDir falls back to the bundled
	// default, the same way the installer resolves it.
	if cfg := h.server.Config.Docs; cfg != nil && cfg.UIPath != "" {
		dir := cfg.UIDir
		if dir == "" {
			dir = docs.DefaultConfig().UIDir
		}
		templatePath := filepath.Join(dir, docs.TemplateFile)

		if _, err := os.Stat(templatePath); err != nil {
			checks["docs_ui"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			isHealthy = false
		} else {
			checks["docs_ui"] = map[string]interface{}{
				"status": "healthy",
				"path":   templatePath,
			}
		}
	}

	if !isHealthy {
		response["status"] = "degraded"
		logger.Warn().Msg("health check reported degraded state")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

package router

import (
	"github.com/deppfellow/acme-hr-directory/internal/handler"

	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the endpoints outside /api.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPI)
}

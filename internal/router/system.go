package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of
// business logic. They sit outside /api so they bypass the general
// rate limiter.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by load balancers and monitors).
	e.GET("/health", h.Health.CheckHealth)
}

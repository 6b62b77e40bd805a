package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/server"
)

// HealthHandler exposes the endpoint load balancers and uptime
// monitors poll to verify the service is alive and its dependencies
// are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// healthPayload is the health route's response shape: the uniform
// envelope plus a top-level timestamp.
type healthPayload struct {
	errs.Envelope
	Timestamp time.Time `json:"timestamp"`
}

// CheckHealth reports overall status plus per-dependency checks.
//
// Returns 200 when the database is reachable, 503 otherwise. Redis is
// reported but does not fail the check: the job queue degrades without
// it, the API does not.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c)

	checks := map[string]any{}
	healthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.server.DB != nil {
		dbStart := time.Now()
		if err := h.server.DB.Client.Ping(ctx, nil); err != nil {
			checks["database"] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}
			healthy = false

			logger.Error().Err(err).Msg("database health check failed")
		} else {
			checks["database"] = map[string]any{
				"status":        "healthy",
				"response_time": time.Since(dbStart).String(),
			}
		}
	}

	if h.server.Redis != nil {
		redisStart := time.Now()
		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			logger.Error().Err(err).Msg("redis health check failed")
		} else {
			checks["redis"] = map[string]any{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	payload := healthPayload{
		Envelope: errs.Envelope{
			Success: true,
			Message: "Server is healthy",
			Data: map[string]any{
				"environment": h.server.Config.Primary.Env,
				"checks":      checks,
			},
		},
		Timestamp: time.Now().UTC(),
	}

	if !healthy {
		payload.Success = false
		payload.Message = "Server is unhealthy"
		return c.JSON(http.StatusServiceUnavailable, payload)
	}

	return c.JSON(http.StatusOK, payload)
}

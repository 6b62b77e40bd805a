package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vendorrs/backend/internal/server"
)

const (
	// UserIDKey and UserRoleKey are the canonical keys under which the
	// auth guard stores the verified identity in echo context. They
	// are written exactly once per request, by the guard, and only
	// read afterwards.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// LoggerKey stores the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer enriches each request with a request-scoped logger
// carrying correlation fields: request_id, method, route path, client
// ip, and — when the guard already ran — user identity.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer using the app server
// container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an echo middleware that builds the
// request-scoped logger and stores it in both the echo context and the
// Go request context, so non-HTTP code that only sees context.Context
// can still log with correlation fields.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template (e.g. "/api/products/:id"), not raw URL
				Str("ip", c.RealIP()).
				Logger()

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}
			if userRole := GetUserRole(c); userRole != "" {
				contextLogger = contextLogger.With().Str("user_role", userRole).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// loggerCtxKey is the private context key type for the request logger,
// avoiding collisions with string keys from other packages.
type loggerCtxKey struct{}

// GetUserID reads the verified user id from echo context. Returns ""
// when the guard has not run (public route).
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetUserRole reads the verified role from echo context.
func GetUserRole(c echo.Context) string {
	if userRole, ok := c.Get(UserRoleKey).(string); ok {
		return userRole
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from echo context.
// If EnhanceContext did not run, it returns a no-op logger so callers
// never crash on nil.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}

// LoggerFromContext retrieves the request logger from a Go context
// (repositories and services only see context.Context).
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}

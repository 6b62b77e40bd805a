package middleware

import (
	"github.com/vendorrs/backend/internal/server"
)

// Middlewares is a lightweight container that groups all middleware
// components used by the HTTP server.
//
// Build once during startup, reuse everywhere: this keeps router setup
// clean and gives every middleware access to shared dependencies
// (config, logger) through *server.Server.
type Middlewares struct {
	// Global holds common middleware used across the whole API: CORS,
	// security headers, body limit, request logging, recovery, and the
	// global error handler.
	Global *GlobalMiddlewares

	// Auth provides the bearer-token guard and role enforcement.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip, optional user metadata).
	ContextEnhancer *ContextEnhancer

	// RateLimit enforces the per-route-class fixed-window limits.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the
// application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}

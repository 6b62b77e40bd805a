package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/handler"
	"github.com/vendorrs/backend/internal/middleware"
)

// registerAuthRoutes wires the authentication endpoints.
//
// Register and login share the auth limiter class (only failed
// attempts count); the password-reset pair shares its own, stricter
// class.
func registerAuthRoutes(api *echo.Group, mws *middleware.Middlewares, h *handler.Handlers) {
	auth := api.Group("/auth")

	// @route   POST /api/auth/register
	// @access  Public
	auth.POST("/register", h.Auth.Register(), mws.RateLimit.Auth())

	// @route   POST /api/auth/login
	// @access  Public
	auth.POST("/login", h.Auth.Login(), mws.RateLimit.Auth())

	// @route   GET /api/auth/user
	// @access  Private
	auth.GET("/user", h.Auth.CurrentUser, mws.Auth.RequireAuth)

	// @route   POST /api/auth/forgot-password
	// @access  Public
	auth.POST("/forgot-password", h.Auth.ForgotPassword(), mws.RateLimit.PasswordReset())

	// @route   POST /api/auth/reset-password
	// @access  Public
	auth.POST("/reset-password", h.Auth.ResetPassword(), mws.RateLimit.PasswordReset())
}

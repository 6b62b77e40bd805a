// Package router initializes the HTTP router (using Echo).
//
// It registers the global middlewares and defines the API route
// groups, mapping paths to handlers with the access level and rate
// limit class each route declares.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/handler"
	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/server"
)

// New builds the echo instance: the uniform error handler, global
// middleware in order, and every route group.
//
// Middleware order matters: the context enhancer must run before the
// request logger (the logger reads the request-scoped fields), and the
// general rate limiter guards only the /api group so health probes are
// never throttled.
func New(s *server.Server, mws *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler()

	e.Use(mws.Global.Secure())
	e.Use(mws.Global.CORS())
	e.Use(mws.Global.BodyLimit())
	e.Use(middleware.RequestID())
	e.Use(mws.ContextEnhancer.EnhanceContext())
	e.Use(mws.Global.RequestLogger())
	e.Use(mws.Global.Recover())

	registerSystemRoutes(e, h)

	api := e.Group("/api", mws.RateLimit.General())
	registerAuthRoutes(api, mws, h)
	registerProductRoutes(api, mws, h)
	registerOrderRoutes(api, mws, h)

	return e
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/handler"
	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/repository"
)

// registerOrderRoutes wires the order endpoints. The whole group is
// private; the static paths are declared before /:id so echo does not
// swallow them as id values.
func registerOrderRoutes(api *echo.Group, mws *middleware.Middlewares, h *handler.Handlers) {
	orders := api.Group("/orders", mws.Auth.RequireAuth)

	// @route   GET /api/orders/vendor-rankings
	// @access  Private
	orders.GET("/vendor-rankings", h.Order.VendorRankings)

	// @route   GET /api/orders/my-ranking
	// @access  Private (vendor)
	orders.GET("/my-ranking", h.Order.MyRanking)

	// @route   GET /api/orders/stats
	// @access  Private (vendor)
	orders.GET("/stats", h.Order.Stats)

	// @route   GET /api/orders
	// @access  Private (vendor)
	orders.GET("", h.Order.List)

	// @route   GET /api/orders/:id
	// @access  Private (vendor)
	orders.GET("/:id", h.Order.Get())

	// @route   POST /api/orders
	// @access  Private (vendor)
	orders.POST("", h.Order.Create(), mws.RateLimit.OrderCreation())

	// @route   PUT /api/orders/:id/payment
	// @access  Private (vendor)
	orders.PUT("/:id/payment", h.Order.UpdatePayment())

	// @route   PUT /api/orders/:id/status
	// @access  Private (center, admin)
	orders.PUT("/:id/status", h.Order.UpdateStatus(),
		mws.Auth.RequireRole(repository.RoleCenter, repository.RoleAdmin))
}

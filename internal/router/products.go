package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/handler"
	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/repository"
)

// registerProductRoutes wires the catalog endpoints. Reads are public;
// mutations require a center or admin account.
func registerProductRoutes(api *echo.Group, mws *middleware.Middlewares, h *handler.Handlers) {
	products := api.Group("/products")

	manage := []echo.MiddlewareFunc{
		mws.Auth.RequireAuth,
		mws.Auth.RequireRole(repository.RoleCenter, repository.RoleAdmin),
	}

	// @route   GET /api/products
	// @access  Public
	products.GET("", h.Product.List)

	// @route   GET /api/products/:id
	// @access  Public
	products.GET("/:id", h.Product.Get())

	// @route   POST /api/products
	// @access  Private (center, admin)
	products.POST("", h.Product.Create(), manage...)

	// @route   PUT /api/products/:id
	// @access  Private (center, admin)
	products.PUT("/:id", h.Product.Update(), manage...)

	// @route   DELETE /api/products/:id
	// @access  Private (center, admin)
	products.DELETE("/:id", h.Product.Delete(), manage...)
}

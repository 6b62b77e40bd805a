package handler

import (
	"github.com/vendorrs/backend/internal/server"
	"github.com/vendorrs/backend/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around instead of many.
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Product *ProductHandler
	Order   *OrderHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Auth:    NewAuthHandler(s, services.Auth),
		Product: NewProductHandler(s, services.Product),
		Order:   NewOrderHandler(s, services.Order),
	}
}

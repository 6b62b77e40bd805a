package service

import (
	"github.com/vendorrs/backend/internal/repository"
	"github.com/vendorrs/backend/internal/server"
)

// Services is the container for all business-logic services, wired
// once at startup.
type Services struct {
	Auth    *AuthService
	Product *ProductService
	Order   *OrderService
}

// NewServices constructs the service container from the application
// server and the repository container.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Auth:    NewAuthService(s, repos.Users),
		Product: NewProductService(s, repos.Products),
		Order:   NewOrderService(s, repos.Orders, repos.Products),
	}
}

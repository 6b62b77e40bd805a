package repository

import (
	"github.com/vendorrs/backend/internal/server"
)

// Repositories is a container for all repository instances, wired once
// at startup and shared across services.
type Repositories struct {
	Users    *UserRepository
	Products *ProductRepository
	Orders   *OrderRepository
}

// NewRepositories constructs the repository container from the shared
// application server (the database client lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(s.DB),
		Products: NewProductRepository(s.DB),
		Orders:   NewOrderRepository(s.DB),
	}
}

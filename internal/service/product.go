package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendorrs/backend/internal/dberr"
	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/repository"
	"github.com/vendorrs/backend/internal/server"
)

// ProductService implements catalog operations. Reads are public;
// mutations are restricted to center/admin roles by the router.
type ProductService struct {
	server   *server.Server
	products *repository.ProductRepository
}

func NewProductService(s *server.Server, products *repository.ProductRepository) *ProductService {
	return &ProductService{
		server:   s,
		products: products,
	}
}

// CreateProductInput is validated catalog data from the handler. IDs
// arrive as hex strings already checked against the ObjectID format.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	Image       string
	CreatedBy   string
}

// UpdateProductInput carries optional fields; nil means unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
	Image       *string
	IsAvailable *bool
}

func (s *ProductService) List(ctx context.Context) ([]repository.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*repository.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid product ID format", nil)
	}

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, errs.NewNotFoundError("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*repository.Product, error) {
	category, err := primitive.ObjectIDFromHex(input.Category)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid category ID format", nil)
	}
	createdBy, err := primitive.ObjectIDFromHex(input.CreatedBy)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}

	product := &repository.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    category,
		Image:       input.Image,
		IsAvailable: true,
		CreatedBy:   createdBy,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*repository.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid product ID format", nil)
	}

	update := repository.ProductUpdate{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Image:       input.Image,
		IsAvailable: input.IsAvailable,
	}

	if input.Category != nil {
		category, err := primitive.ObjectIDFromHex(*input.Category)
		if err != nil {
			return nil, errs.NewBadRequestError("Invalid category ID format", nil)
		}
		update.Category = &category
	}

	product, err := s.products.Update(ctx, oid, update)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, errs.NewNotFoundError("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.NewBadRequestError("Invalid product ID format", nil)
	}

	if err := s.products.Delete(ctx, oid); err != nil {
		if dberr.IsNotFound(err) {
			return errs.NewNotFoundError("Product not found")
		}
		return err
	}
	return nil
}

package handler

import (
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/server"
	"github.com/vendorrs/backend/internal/service"
	"github.com/vendorrs/backend/internal/validation"
)

// ProductHandler serves the catalog CRUD endpoints.
type ProductHandler struct {
	Handler
	service *service.ProductService
}

func NewProductHandler(s *server.Server, products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler: NewHandler(s),
		service: products,
	}
}

// ProductIDRequest binds the :id path param for single-product routes.
// The json:"-" keeps a body key from overwriting the path-bound value.
type ProductIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (r *ProductIDRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ProductIDRequest) Messages() validation.Messages {
	return validation.Messages{
		"id:required": "Invalid product ID format",
		"id:objectid": "Invalid product ID format",
	}
}

// CreateProductRequest is the new-product payload. Price and Quantity
// are pointers so an omitted field is rejected while an explicit 0
// stays valid.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	Price       *float64 `json:"price" validate:"required,gte=0,lte=10000000"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0,lte=1000000"`
	Category    string   `json:"category" validate:"required,objectid"`
	Image       string   `json:"image" validate:"omitempty,url"`
}

func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Image = strings.TrimSpace(r.Image)
}

func (r *CreateProductRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateProductRequest) Sanitize() {
	r.Name = html.EscapeString(r.Name)
	r.Description = html.EscapeString(r.Description)
}

func (r *CreateProductRequest) Messages() validation.Messages {
	return validation.Messages{
		"name:required":        "Product name is required",
		"name:min":             "Product name must be between 2 and 200 characters",
		"name:max":             "Product name must be between 2 and 200 characters",
		"description:required": "Product description is required",
		"description:min":      "Description must be between 10 and 2000 characters",
		"description:max":      "Description must be between 10 and 2000 characters",
		"price:required":       "Price must be a positive number and less than 10,000,000",
		"price:gte":            "Price must be a positive number and less than 10,000,000",
		"price:lte":            "Price must be a positive number and less than 10,000,000",
		"quantity:required":    "Quantity must be a non-negative integer and less than 1,000,000",
		"quantity:gte":         "Quantity must be a non-negative integer and less than 1,000,000",
		"quantity:lte":         "Quantity must be a non-negative integer and less than 1,000,000",
		"category:required":    "Category is required",
		"category:objectid":    "Invalid category ID format",
		"image:url":            "Image must be a valid URL",
	}
}

// UpdateProductRequest carries the :id param plus optional fields; nil
// means unchanged.
type UpdateProductRequest struct {
	ID          string   `param:"id" json:"-" validate:"required,objectid"`
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0,lte=10000000"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0,lte=1000000"`
	Category    *string  `json:"category" validate:"omitempty,objectid"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	IsAvailable *bool    `json:"isAvailable"`
}

func (r *UpdateProductRequest) Normalize() {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
	}
	if r.Category != nil {
		*r.Category = strings.TrimSpace(*r.Category)
	}
	if r.Image != nil {
		*r.Image = strings.TrimSpace(*r.Image)
	}
}

func (r *UpdateProductRequest) Sanitize() {
	if r.Name != nil {
		*r.Name = html.EscapeString(*r.Name)
	}
	if r.Description != nil {
		*r.Description = html.EscapeString(*r.Description)
	}
}

func (r *UpdateProductRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateProductRequest) Messages() validation.Messages {
	return validation.Messages{
		"id:required":       "Invalid product ID format",
		"id:objectid":       "Invalid product ID format",
		"name:min":          "Product name must be between 2 and 200 characters",
		"name:max":          "Product name must be between 2 and 200 characters",
		"description:min":   "Description must be between 10 and 2000 characters",
		"description:max":   "Description must be between 10 and 2000 characters",
		"price:gte":         "Price must be a positive number and less than 10,000,000",
		"price:lte":         "Price must be a positive number and less than 10,000,000",
		"quantity:gte":      "Quantity must be a non-negative integer and less than 1,000,000",
		"quantity:lte":      "Quantity must be a non-negative integer and less than 1,000,000",
		"category:objectid": "Invalid category ID format",
		"image:url":         "Image must be a valid URL",
	}
}

// List returns the full catalog. Public route, no payload.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Products retrieved successfully", products)
}

// Get returns one product by id.
func (h *ProductHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, h.get, http.StatusOK, "Product retrieved successfully")
}

func (h *ProductHandler) get(c echo.Context, req *ProductIDRequest) (any, error) {
	return h.service.Get(c.Request().Context(), req.ID)
}

// Create adds a product to the catalog.
func (h *ProductHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, h.create, http.StatusCreated, "Product created successfully")
}

func (h *ProductHandler) create(c echo.Context, req *CreateProductRequest) (any, error) {
	return h.service.Create(c.Request().Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		Category:    req.Category,
		Image:       req.Image,
		CreatedBy:   middleware.GetUserID(c),
	})
}

// Update applies the provided fields to an existing product.
func (h *ProductHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, h.update, http.StatusOK, "Product updated successfully")
}

func (h *ProductHandler) update(c echo.Context, req *UpdateProductRequest) (any, error) {
	return h.service.Update(c.Request().Context(), req.ID, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Image:       req.Image,
		IsAvailable: req.IsAvailable,
	})
}

// Delete removes a product.
func (h *ProductHandler) Delete() echo.HandlerFunc {
	return Handle(h.Handler, h.delete, http.StatusOK, "Product deleted successfully")
}

func (h *ProductHandler) delete(c echo.Context, req *ProductIDRequest) (any, error) {
	return nil, h.service.Delete(c.Request().Context(), req.ID)
}

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

// OrderHandler serves order placement, listing, statistics, rankings,
// and status updates. List/get/stats routes are scoped to the calling
// vendor through the guard-attached identity.
type OrderHandler struct {
	Handler
	service *service.OrderService
}

func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler: NewHandler(s),
		service: orders,
	}
}

// OrderIDRequest binds the :id path param for single-order routes.
// The json:"-" keeps a body key from overwriting the path-bound value.
type OrderIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (r *OrderIDRequest) Validate() error {
	return validation.Struct(r)
}

func (r *OrderIDRequest) Messages() validation.Messages {
	return validation.Messages{
		"id:required": "Invalid order ID format",
		"id:objectid": "Invalid order ID format",
	}
}

// CreateOrderRequest is the order placement payload.
type CreateOrderRequest struct {
	CenterID string                   `json:"centerId" validate:"required,objectid"`
	Items    []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes    string                   `json:"notes" validate:"omitempty,max=500"`
}

type CreateOrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=10000"`
}

func (r *CreateOrderRequest) Normalize() {
	r.CenterID = strings.TrimSpace(r.CenterID)
	r.Notes = strings.TrimSpace(r.Notes)
	for i := range r.Items {
		r.Items[i].ProductID = strings.TrimSpace(r.Items[i].ProductID)
	}
}

func (r *CreateOrderRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateOrderRequest) Sanitize() {
	r.Notes = html.EscapeString(r.Notes)
}

func (r *CreateOrderRequest) Messages() validation.Messages {
	return validation.Messages{
		"centerId:required":        "Center ID is required",
		"centerId:objectid":        "Invalid center ID format",
		"items:required":           "Order must contain at least one item",
		"items:min":                "Order must contain at least one item",
		"items.productId:required": "Product ID is required",
		"items.productId:objectid": "Invalid product ID format",
		"items.quantity:required":  "Quantity must be between 1 and 10,000",
		"items.quantity:gte":       "Quantity must be between 1 and 10,000",
		"items.quantity:lte":       "Quantity must be between 1 and 10,000",
		"notes:max":                "Notes must not exceed 500 characters",
	}
}

// UpdatePaymentRequest updates an order's payment status. The target
// order is named by the path alone; json:"-" keeps a body "id" from
// redirecting the update.
type UpdatePaymentRequest struct {
	ID            string `param:"id" json:"-" validate:"required,objectid"`
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending completed"`
}

func (r *UpdatePaymentRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdatePaymentRequest) Messages() validation.Messages {
	return validation.Messages{
		"id:required":            "Invalid order ID format",
		"id:objectid":            "Invalid order ID format",
		"paymentStatus:required": "Payment status must be either pending or completed",
		"paymentStatus:oneof":    "Payment status must be either pending or completed",
	}
}

// UpdateOrderStatusRequest moves an order through its lifecycle.
type UpdateOrderStatusRequest struct {
	ID     string `param:"id" json:"-" validate:"required,objectid"`
	Status string `json:"status" validate:"required,oneof=pending approved rejected paid completed"`
}

func (r *UpdateOrderStatusRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateOrderStatusRequest) Messages() validation.Messages {
	return validation.Messages{
		"id:required":     "Invalid order ID format",
		"id:objectid":     "Invalid order ID format",
		"status:required": "Invalid order status",
		"status:oneof":    "Invalid order status",
	}
}

// List returns the calling vendor's orders, newest first.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context(), middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// Stats returns the calling vendor's order statistics.
func (h *OrderHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context(), middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Order statistics retrieved successfully", stats)
}

// VendorRankings returns the full leaderboard.
func (h *OrderHandler) VendorRankings(c echo.Context) error {
	rankings, err := h.service.VendorRankings(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Vendor rankings retrieved successfully", rankings)
}

// MyRanking returns the calling vendor's leaderboard position.
func (h *OrderHandler) MyRanking(c echo.Context) error {
	ranking, err := h.service.Ranking(c.Request().Context(), middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Vendor ranking retrieved successfully", ranking)
}

// Get returns one of the calling vendor's orders by id.
func (h *OrderHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, h.get, http.StatusOK, "Order retrieved successfully")
}

func (h *OrderHandler) get(c echo.Context, req *OrderIDRequest) (any, error) {
	return h.service.Get(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

// Create places a new order for the calling vendor.
func (h *OrderHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, h.create, http.StatusCreated, "Order created successfully")
}

func (h *OrderHandler) create(c echo.Context, req *CreateOrderRequest) (any, error) {
	items := make([]service.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return h.service.Create(c.Request().Context(), middleware.GetUserID(c), service.CreateOrderInput{
		CenterID: req.CenterID,
		Items:    items,
		Notes:    req.Notes,
	})
}

// UpdatePayment updates the payment status of one of the calling
// vendor's orders.
func (h *OrderHandler) UpdatePayment() echo.HandlerFunc {
	return Handle(h.Handler, h.updatePayment, http.StatusOK, "Payment status updated successfully")
}

func (h *OrderHandler) updatePayment(c echo.Context, req *UpdatePaymentRequest) (any, error) {
	return h.service.UpdatePayment(c.Request().Context(), middleware.GetUserID(c), req.ID, req.PaymentStatus)
}

// UpdateStatus moves an order through its lifecycle. Center/admin only;
// the route is not vendor-scoped.
func (h *OrderHandler) UpdateStatus() echo.HandlerFunc {
	return Handle(h.Handler, h.updateStatus, http.StatusOK, "Order status updated successfully")
}

func (h *OrderHandler) updateStatus(c echo.Context, req *UpdateOrderStatusRequest) (any, error) {
	return h.service.UpdateStatus(c.Request().Context(), req.ID, req.Status)
}

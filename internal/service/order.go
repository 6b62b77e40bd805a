package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendorrs/backend/internal/dberr"
	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/repository"
	"github.com/vendorrs/backend/internal/server"
)

// OrderService implements order creation and the vendor-facing order
// views (listing, stats, rankings).
type OrderService struct {
	server   *server.Server
	orders   *repository.OrderRepository
	products *repository.ProductRepository
}

func NewOrderService(s *server.Server, orders *repository.OrderRepository, products *repository.ProductRepository) *OrderService {
	return &OrderService{
		server:   s,
		orders:   orders,
		products: products,
	}
}

// CreateOrderInput is validated order data from the handler.
type CreateOrderInput struct {
	CenterID string
	Items    []CreateOrderItem
	Notes    string
}

type CreateOrderItem struct {
	ProductID string
	Quantity  int
}

// MyRanking reports the calling vendor's leaderboard position.
type MyRanking struct {
	Rank         int     `json:"rank"`
	OrderCount   int     `json:"orderCount"`
	TotalAmount  float64 `json:"totalAmount"`
	TotalVendors int     `json:"totalVendors"`
}

// Create validates the referenced products, snapshots their names and
// unit prices into the order, and computes the total. The order starts
// pending with payment pending.
func (s *OrderService) Create(ctx context.Context, vendorID string, input CreateOrderInput) (*repository.Order, error) {
	vid, err := primitive.ObjectIDFromHex(vendorID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}
	cid, err := primitive.ObjectIDFromHex(input.CenterID)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid center ID format", nil)
	}

	items := make([]repository.OrderItem, 0, len(input.Items))
	var total float64

	for i, item := range input.Items {
		pid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, errs.NewBadRequestError("Invalid product ID format", nil)
		}

		product, err := s.products.FindByID(ctx, pid)
		if err != nil {
			if dberr.IsNotFound(err) {
				return nil, errs.NewBadRequestError(fmt.Sprintf("Product %s not found", item.ProductID), nil)
			}
			return nil, err
		}
		if !product.IsAvailable {
			return nil, errs.NewBadRequestError(fmt.Sprintf("Product %s is not available", product.Name), nil)
		}

		items = append(items, repository.OrderItem{
			ProductID: pid,
			Name:      product.Name,
			Quantity:  input.Items[i].Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := &repository.Order{
		VendorID:      vid,
		CenterID:      cid,
		Items:         items,
		Notes:         input.Notes,
		Status:        repository.OrderStatusPending,
		PaymentStatus: repository.PaymentStatusPending,
		TotalAmount:   total,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns the calling vendor's orders, newest first.
func (s *OrderService) List(ctx context.Context, vendorID string) ([]repository.Order, error) {
	vid, err := primitive.ObjectIDFromHex(vendorID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}
	return s.orders.ListByVendor(ctx, vid)
}

// Get returns one of the calling vendor's orders.
func (s *OrderService) Get(ctx context.Context, vendorID, id string) (*repository.Order, error) {
	vid, err := primitive.ObjectIDFromHex(vendorID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid order ID format", nil)
	}

	order, err := s.orders.FindByIDForVendor(ctx, oid, vid)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, errs.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// Stats aggregates the calling vendor's order history.
func (s *OrderService) Stats(ctx context.Context, vendorID string) (*repository.OrderStats, error) {
	vid, err := primitive.ObjectIDFromHex(vendorID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}
	return s.orders.StatsByVendor(ctx, vid)
}

// VendorRankings returns the full leaderboard.
func (s *OrderService) VendorRankings(ctx context.Context) ([]repository.VendorRanking, error) {
	return s.orders.VendorRankings(ctx)
}

// Ranking returns the calling vendor's leaderboard position. Vendors
// with no orders yet get rank 0.
func (s *OrderService) Ranking(ctx context.Context, vendorID string) (*MyRanking, error) {
	vid, err := primitive.ObjectIDFromHex(vendorID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}

	rankings, err := s.orders.VendorRankings(ctx)
	if err != nil {
		return nil, err
	}

	result := &MyRanking{TotalVendors: len(rankings)}
	for _, r := range rankings {
		if r.VendorID == vid {
			result.Rank = r.Rank
			result.OrderCount = r.OrderCount
			result.TotalAmount = r.TotalAmount
			break
		}
	}
	return result, nil
}

// UpdatePayment sets the payment status on one of the calling vendor's
// orders.
func (s *OrderService) UpdatePayment(ctx context.Context, vendorID, id, paymentStatus string) (*repository.Order, error) {
	vid, err := primitive.ObjectIDFromHex(vendorID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid order ID format", nil)
	}

	order, err := s.orders.UpdatePaymentStatus(ctx, oid, vid, paymentStatus)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, errs.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus sets the lifecycle status of an order (center/admin
// operation).
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*repository.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid order ID format", nil)
	}

	order, err := s.orders.UpdateStatus(ctx, oid, status)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, errs.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	return order, nil
}

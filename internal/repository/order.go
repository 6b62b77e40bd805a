package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendorrs/backend/internal/database"
)

// Order lifecycle states. An order is created pending; a center
// approves or rejects; payment and fulfillment follow.
const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusRejected  = "rejected"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
)

// Payment states carried on the order.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// OrderItem is a line item with the unit price snapshotted at order
// time, so later catalog price changes do not rewrite order history.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
}

// Order is a vendor's purchase from a center.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VendorID      primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	CenterID      primitive.ObjectID `bson:"centerId" json:"centerId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderStats aggregates a vendor's order history.
type OrderStats struct {
	TotalOrders int     `bson:"totalOrders" json:"totalOrders"`
	TotalSpent  float64 `bson:"totalSpent" json:"totalSpent"`
	Pending     int     `bson:"pending" json:"pending"`
	Approved    int     `bson:"approved" json:"approved"`
	Rejected    int     `bson:"rejected" json:"rejected"`
	Completed   int     `bson:"completed" json:"completed"`
}

// VendorRanking is one row of the vendor leaderboard, ordered by total
// order value.
type VendorRanking struct {
	VendorID    primitive.ObjectID `bson:"_id" json:"vendorId"`
	OrderCount  int                `bson:"orderCount" json:"orderCount"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Rank        int                `bson:"-" json:"rank"`
}

// OrderRepository owns queries against the orders collection.
type OrderRepository struct {
	db *database.Database
}

func NewOrderRepository(db *database.Database) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order and fills in the generated ID.
func (r *OrderRepository) Create(ctx context.Context, order *Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.db.Orders().InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// ListByVendor returns a vendor's orders, newest first.
func (r *OrderRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]Order, error) {
	cur, err := r.db.Orders().Find(ctx,
		bson.M{"vendorId": vendorID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByIDForVendor returns one order scoped to its owning vendor, so
// a vendor can never read another vendor's order by guessing IDs.
// Returns mongo.ErrNoDocuments when the order does not exist or
// belongs to someone else.
func (r *OrderRepository) FindByIDForVendor(ctx context.Context, id, vendorID primitive.ObjectID) (*Order, error) {
	var order Order
	err := r.db.Orders().FindOne(ctx, bson.M{"_id": id, "vendorId": vendorID}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePaymentStatus sets the payment status on a vendor's order and
// returns the updated document.
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id, vendorID primitive.ObjectID, paymentStatus string) (*Order, error) {
	res := r.db.Orders().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "vendorId": vendorID},
		bson.M{"$set": bson.M{"paymentStatus": paymentStatus, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var order Order
	if err := res.Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets the lifecycle status on any order (center/admin
// operation, so it is not vendor-scoped) and returns the updated
// document.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Order, error) {
	res := r.db.Orders().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var order Order
	if err := res.Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// StatsByVendor aggregates a vendor's order counts and spend in one
// pipeline pass.
func (r *OrderRepository) StatsByVendor(ctx context.Context, vendorID primitive.ObjectID) (*OrderStats, error) {
	statusCount := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$status", status}}, 1, 0,
		}}}
	}

	pipeline := []bson.M{
		{"$match": bson.M{"vendorId": vendorID}},
		{"$group": bson.M{
			"_id":         nil,
			"totalOrders": bson.M{"$sum": 1},
			"totalSpent":  bson.M{"$sum": "$totalAmount"},
			"pending":     statusCount(OrderStatusPending),
			"approved":    statusCount(OrderStatusApproved),
			"rejected":    statusCount(OrderStatusRejected),
			"completed":   statusCount(OrderStatusCompleted),
		}},
	}

	cur, err := r.db.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []OrderStats
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}

	// No orders yet: zero stats rather than a 404.
	if len(results) == 0 {
		return &OrderStats{}, nil
	}
	return &results[0], nil
}

// VendorRankings ranks vendors by total order value, descending. The
// Rank field is assigned from the sorted position.
func (r *OrderRepository) VendorRankings(ctx context.Context) ([]VendorRanking, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":         "$vendorId",
			"orderCount":  bson.M{"$sum": 1},
			"totalAmount": bson.M{"$sum": "$totalAmount"},
		}},
		{"$sort": bson.D{{Key: "totalAmount", Value: -1}}},
	}

	cur, err := r.db.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rankings := []VendorRanking{}
	if err := cur.All(ctx, &rankings); err != nil {
		return nil, err
	}

	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings, nil
}

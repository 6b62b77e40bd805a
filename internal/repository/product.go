package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendorrs/backend/internal/database"
)

// Product is a catalog entry offered to vendors. Category references a
// category document; CreatedBy references the center account that owns
// the listing.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductUpdate carries the fields of a partial update. Nil pointers
// mean "leave unchanged"; only non-nil fields land in the $set.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *primitive.ObjectID
	Image       *string
	IsAvailable *bool
}

// ProductRepository owns queries against the products collection.
type ProductRepository struct {
	db *database.Database
}

func NewProductRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns all products, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]Product, error) {
	cur, err := r.db.Products().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID returns one product, or mongo.ErrNoDocuments.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var product Product
	err := r.db.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product and fills in the generated ID.
func (r *ProductRepository) Create(ctx context.Context, product *Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.db.Products().InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies a partial update and returns the resulting document.
// Returns mongo.ErrNoDocuments when the product does not exist.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}

	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.IsAvailable != nil {
		set["isAvailable"] = *update.IsAvailable
	}

	res := r.db.Products().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var product Product
	if err := res.Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes one product. Returns mongo.ErrNoDocuments when
// nothing matched.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res := r.db.Products().FindOneAndDelete(ctx, bson.M{"_id": id})
	return res.Err()
}

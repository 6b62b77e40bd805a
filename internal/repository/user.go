package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendorrs/backend/internal/database"
)

// Account roles. Role gates route access: product mutations require
// center or admin; order creation belongs to vendors.
const (
	RoleVendor = "vendor"
	RoleCenter = "center"
	RoleAdmin  = "admin"
)

// User is a marketplace account. Vendor accounts carry the business
// fields; center accounts carry a category. Password holds the bcrypt
// hash, never the plaintext.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`

	// Vendor-only fields.
	BusinessName string `bson:"businessName,omitempty" json:"businessName,omitempty"`
	PAN          string `bson:"pan,omitempty" json:"pan,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Province     string `bson:"province,omitempty" json:"province,omitempty"`
	District     string `bson:"district,omitempty" json:"district,omitempty"`

	// Center-only field.
	Category string `bson:"category,omitempty" json:"category,omitempty"`

	// Password reset state: hash of the outstanding single-use token
	// and its expiry. Cleared when the reset completes.
	ResetTokenHash    string    `bson:"resetTokenHash,omitempty" json:"-"`
	ResetTokenExpires time.Time `bson:"resetTokenExpires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// UserRepository owns queries against the users collection.
type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated ID. A duplicate
// email surfaces as a driver duplicate-key error (unique index).
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := r.db.Users().InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByEmail returns the user with the given (already lowercased)
// email, or mongo.ErrNoDocuments.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given ID, or mongo.ErrNoDocuments.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := r.db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetResetToken stores the hashed reset token and its expiry on the
// account, replacing any outstanding one.
func (r *UserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	_, err := r.db.Users().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"resetTokenHash":    tokenHash,
			"resetTokenExpires": expires,
		},
	})
	return err
}

// FindByResetToken returns the user holding the given (hashed) reset
// token with an unexpired window, or mongo.ErrNoDocuments.
func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*User, error) {
	var user User
	err := r.db.Users().FindOne(ctx, bson.M{
		"resetTokenHash":    tokenHash,
		"resetTokenExpires": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash and clears any outstanding
// reset token, making the token single-use.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := r.db.Users().UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"resetTokenHash": "", "resetTokenExpires": ""},
	})
	return err
}

package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application depends on.
//
// This runs once at startup and is idempotent: CreateMany is a no-op
// for indexes that already exist with the same definition.
//
// Indexes:
//   - users.email unique: duplicate registrations fail at the database
//     even under concurrent requests
//   - orders.vendorId: vendor order listings and stats filter on it
//   - orders.centerId: center-side order views filter on it
//   - products.category: catalog filtering by category
func (db *Database) EnsureIndexes(ctx context.Context, logger *zerolog.Logger) error {
	_, err := db.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users.email index: %w", err)
	}

	_, err = db.Orders().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendorId", Value: 1}}},
		{Keys: bson.D{{Key: "centerId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create orders indexes: %w", err)
	}

	_, err = db.Products().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create products.category index: %w", err)
	}

	logger.Info().Msg("database indexes ensured")

	return nil
}

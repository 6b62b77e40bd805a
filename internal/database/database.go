// Package database contains the logic for establishing connections to
// MongoDB.
//
// It handles:
//   - creating the mongo client from config
//   - verifying connectivity with a bounded ping at startup
//   - exposing typed collection accessors so collection names live in
//     one place
//   - creating the indexes the application relies on
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vendorrs/backend/internal/config"
)

// Collection names. Centralized so repositories never hardcode strings.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
)

// DatabasePingTimeout is how long startup waits for the initial ping
// before treating the database as unreachable.
const DatabasePingTimeout = 10 * time.Second

// Database wraps the mongo client and the application database handle.
// It is the single object passed around for data access.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to MongoDB using the configured URI and pings the
// deployment so startup fails fast when the database is down.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	// Connect is lazy; Ping forces a round trip so a bad URI or a down
	// deployment surfaces here instead of on the first request.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return database, nil
}

// Users returns the users collection.
func (db *Database) Users() *mongo.Collection {
	return db.DB.Collection(CollectionUsers)
}

// Products returns the products collection.
func (db *Database) Products() *mongo.Collection {
	return db.DB.Collection(CollectionProducts)
}

// Orders returns the orders collection.
func (db *Database) Orders() *mongo.Collection {
	return db.DB.Collection(CollectionOrders)
}

// Close disconnects the mongo client, waiting up to the ping timeout
// for in-flight operations to finish.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()

	return db.Client.Disconnect(ctx)
}

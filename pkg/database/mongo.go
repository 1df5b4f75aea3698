// Package database owns the MongoDB client. It is created once at process
// start and shared by every repository.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	Categories = "categories"
	Products   = "products"
	Orders     = "orders"
)

// Mongo bundles the client and the catalog database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials uri, verifies the connection with a ping and selects dbName.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(2 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}

// indexModels lists the secondary indexes the relation lookups rely on.
func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		Products: {
			{Keys: bson.D{{Key: "category_ids", Value: 1}}},
		},
		Orders: {
			{Keys: bson.D{{Key: "product_ids", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
	}
}

// EnsureIndexes creates the relation and date indexes. It is idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	for coll, models := range indexModels() {
		if _, err := m.DB.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("database: create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

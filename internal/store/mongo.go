// Package store implements the MongoDB persistence layer. Each record type
// gets its own repository over a shared *mongo.Database handle, constructed
// once at startup and injected into the components that need it.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	usersCollection        = "users"
	transactionsCollection = "transactions"
	debtsCollection        = "debts"
	savingsGoalsCollection = "savings_goals"
	insightsCollection     = "insights"
)

// ErrNotFound is returned when a referenced record does not exist. Handlers
// map it to a 404 response.
var ErrNotFound = errors.New("record not found")

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("Connect: connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("Connect: pinging MongoDB: %w", err)
	}

	return client, nil
}

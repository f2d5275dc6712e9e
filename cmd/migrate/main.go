// Command migrate ensures the MongoDB indexes the API relies on. It is safe
// to run repeatedly; existing indexes are left untouched.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/financewise/internal/config"
	"github.com/dvloznov/financewise/internal/store"
)

var mongoURI = flag.String("uri", "", "MongoDB connection URI (overrides MONGO_URL env)")

// collectionIndexes maps each collection to the indexes the query paths use.
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"transactions": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}},
		},
		"debts": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"savings_goals": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"insights": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
}

func main() {
	flag.Parse()

	cfg := config.Load()
	if *mongoURI != "" {
		cfg.MongoURI = *mongoURI
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	log.Printf("Connected to MongoDB database: %s", cfg.DBName)

	created := 0
	for coll, indexes := range collectionIndexes() {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes)
		if err != nil {
			log.Fatalf("Failed to create indexes on %s: %v", coll, err)
		}
		for _, name := range names {
			log.Printf("  [OK] %s.%s", coll, name)
		}
		created += len(names)
	}

	log.Printf("Ensured %d index(es)", created)
}

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/financewise/internal/domain"
)

// InsightRepository persists AI-generated insights in the insights
// collection.
type InsightRepository struct {
	coll *mongo.Collection
}

// NewInsightRepository creates an insight repository over the shared database
// handle.
func NewInsightRepository(db *mongo.Database) *InsightRepository {
	return &InsightRepository{coll: db.Collection(insightsCollection)}
}

// Upsert stores an insight keyed by (user, title). A regenerated insight with
// the same title replaces the previous record instead of duplicating it.
func (r *InsightRepository) Upsert(ctx context.Context, insight *domain.Insight) error {
	filter := bson.M{"user_id": insight.UserID, "title": insight.Title}
	update := bson.M{"$set": insight}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("InsightRepository.Upsert: %w", err)
	}
	return nil
}

// ListByUser returns all stored insights for a user, newest first.
func (r *InsightRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Insight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("InsightRepository.ListByUser: %w", err)
	}
	defer cursor.Close(ctx)

	var insights []*domain.Insight
	if err := cursor.All(ctx, &insights); err != nil {
		return nil, fmt.Errorf("InsightRepository.ListByUser: decoding: %w", err)
	}
	return insights, nil
}

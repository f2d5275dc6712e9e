package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/financewise/internal/domain"
)

// SavingsGoalRepository persists savings goals in the savings_goals
// collection.
type SavingsGoalRepository struct {
	coll *mongo.Collection
}

// NewSavingsGoalRepository creates a savings goal repository over the shared
// database handle.
func NewSavingsGoalRepository(db *mongo.Database) *SavingsGoalRepository {
	return &SavingsGoalRepository{coll: db.Collection(savingsGoalsCollection)}
}

// Insert stores a new savings goal.
func (r *SavingsGoalRepository) Insert(ctx context.Context, goal *domain.SavingsGoal) error {
	if _, err := r.coll.InsertOne(ctx, goal); err != nil {
		return fmt.Errorf("SavingsGoalRepository.Insert: %w", err)
	}
	return nil
}

// ListByUser returns all savings goals for a user.
func (r *SavingsGoalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavingsGoal, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("SavingsGoalRepository.ListByUser: %w", err)
	}
	defer cursor.Close(ctx)

	var goals []*domain.SavingsGoal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("SavingsGoalRepository.ListByUser: decoding: %w", err)
	}
	return goals, nil
}

// FindByID returns the goal with the given id, or ErrNotFound.
func (r *SavingsGoalRepository) FindByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	var goal domain.SavingsGoal
	err := r.coll.FindOne(ctx, bson.M{"id": goalID}).Decode(&goal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("SavingsGoalRepository.FindByID: %w", err)
	}
	return &goal, nil
}

// SetCurrentAmount overwrites the accumulated amount on a goal. Callers
// compute the new total from the existing record plus the contribution, so
// the stored amount never decreases through this path.
func (r *SavingsGoalRepository) SetCurrentAmount(ctx context.Context, goalID string, amount float64) error {
	update := bson.M{"$set": bson.M{"current_amount": amount}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": goalID}, update); err != nil {
		return fmt.Errorf("SavingsGoalRepository.SetCurrentAmount: %w", err)
	}
	return nil
}

// Delete removes a goal by id. Returns ErrNotFound when no record matched.
func (r *SavingsGoalRepository) Delete(ctx context.Context, goalID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": goalID})
	if err != nil {
		return fmt.Errorf("SavingsGoalRepository.Delete: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

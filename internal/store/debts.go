package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/financewise/internal/domain"
)

// DebtRepository persists debts in the debts collection.
type DebtRepository struct {
	coll *mongo.Collection
}

// NewDebtRepository creates a debt repository over the shared database handle.
func NewDebtRepository(db *mongo.Database) *DebtRepository {
	return &DebtRepository{coll: db.Collection(debtsCollection)}
}

// Insert stores a new debt.
func (r *DebtRepository) Insert(ctx context.Context, debt *domain.Debt) error {
	if _, err := r.coll.InsertOne(ctx, debt); err != nil {
		return fmt.Errorf("DebtRepository.Insert: %w", err)
	}
	return nil
}

// InsertMany stores a batch of debts. An empty batch is a no-op.
func (r *DebtRepository) InsertMany(ctx context.Context, debts []*domain.Debt) error {
	if len(debts) == 0 {
		return nil
	}
	docs := make([]interface{}, len(debts))
	for i, d := range debts {
		docs[i] = d
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("DebtRepository.InsertMany: %w", err)
	}
	return nil
}

// ListByUser returns all debts tracked for a user.
func (r *DebtRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Debt, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("DebtRepository.ListByUser: %w", err)
	}
	defer cursor.Close(ctx)

	var debts []*domain.Debt
	if err := cursor.All(ctx, &debts); err != nil {
		return nil, fmt.Errorf("DebtRepository.ListByUser: decoding: %w", err)
	}
	return debts, nil
}

// Delete removes a debt by id. Returns ErrNotFound when no record matched.
func (r *DebtRepository) Delete(ctx context.Context, debtID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": debtID})
	if err != nil {
		return fmt.Errorf("DebtRepository.Delete: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

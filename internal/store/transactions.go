package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/financewise/internal/domain"
)

// TransactionRepository persists transactions in the transactions collection.
type TransactionRepository struct {
	coll *mongo.Collection
}

// NewTransactionRepository creates a transaction repository over the shared
// database handle.
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionsCollection)}
}

// Insert stores a single transaction.
func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	if _, err := r.coll.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("TransactionRepository.Insert: %w", err)
	}
	return nil
}

// InsertMany stores a batch of transactions. An empty batch is a no-op.
func (r *TransactionRepository) InsertMany(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(txs))
	for i, tx := range txs {
		docs[i] = tx
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("TransactionRepository.InsertMany: %w", err)
	}
	return nil
}

// ListByUser returns a user's transactions sorted by date descending. An
// empty category matches all categories; limit <= 0 means no limit.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, category domain.Category, limit int64) ([]*domain.Transaction, error) {
	filter := bson.M{"user_id": userID}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	return r.find(ctx, "ListByUser", filter, opts)
}

// FindInRange returns a user's transactions of the given type with
// start <= date < end.
func (r *TransactionRepository) FindInRange(ctx context.Context, userID string, txType domain.TransactionType, start, end time.Time) ([]*domain.Transaction, error) {
	filter := bson.M{
		"user_id": userID,
		"type":    txType,
		"date":    bson.M{"$gte": start, "$lt": end},
	}
	return r.find(ctx, "FindInRange", filter, nil)
}

// FindSince returns all of a user's transactions dated at or after since.
func (r *TransactionRepository) FindSince(ctx context.Context, userID string, since time.Time) ([]*domain.Transaction, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": since},
	}
	return r.find(ctx, "FindSince", filter, nil)
}

// Recent returns the n most recent transactions for a user.
func (r *TransactionRepository) Recent(ctx context.Context, userID string, n int64) ([]*domain.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(n)
	return r.find(ctx, "Recent", bson.M{"user_id": userID}, opts)
}

// CountByUser returns the number of transactions stored for a user.
func (r *TransactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("TransactionRepository.CountByUser: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*domain.Transaction, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("TransactionRepository.%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var txs []*domain.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("TransactionRepository.%s: decoding: %w", op, err)
	}
	return txs, nil
}

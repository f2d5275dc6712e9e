package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/financewise/internal/domain"
)

// UserRepository persists users in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a user repository over the shared database handle.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Insert stores a new user.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("UserRepository.Insert: %w", err)
	}
	return nil
}

// FindByPhone returns the user registered under phone, or ErrNotFound.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UserRepository.FindByPhone: %w", err)
	}
	return &user, nil
}

// FindByID returns the user with the given id, or ErrNotFound.
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UserRepository.FindByID: %w", err)
	}
	return &user, nil
}

// SetOTP stores a pending one-time code and its expiry on the user record.
func (r *UserRepository) SetOTP(ctx context.Context, phone, otp string, expiry time.Time) error {
	update := bson.M{"$set": bson.M{"otp": otp, "otp_expiry": expiry}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"phone": phone}, update); err != nil {
		return fmt.Errorf("UserRepository.SetOTP: %w", err)
	}
	return nil
}

// ClearOTP removes the pending one-time code after successful verification.
func (r *UserRepository) ClearOTP(ctx context.Context, phone string) error {
	update := bson.M{"$unset": bson.M{"otp": "", "otp_expiry": ""}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"phone": phone}, update); err != nil {
		return fmt.Errorf("UserRepository.ClearOTP: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial profile update and returns the fresh record.
// Nil fields are left untouched.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, name *string, monthlyIncome, fixedExpenses *float64) (*domain.User, error) {
	set := bson.M{}
	if name != nil {
		set["name"] = *name
	}
	if monthlyIncome != nil {
		set["monthly_income"] = *monthlyIncome
	}
	if fixedExpenses != nil {
		set["fixed_expenses"] = *fixedExpenses
	}

	if len(set) > 0 {
		if _, err := r.coll.UpdateOne(ctx, bson.M{"id": userID}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("UserRepository.UpdateProfile: %w", err)
		}
	}

	return r.FindByID(ctx, userID)
}

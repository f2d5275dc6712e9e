package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavingsGoal tracks progress toward a savings target. CurrentAmount only
// ever grows through contributions; there is no cap at the target.
type SavingsGoal struct {
	ID                  string     `bson:"id" json:"id"`
	UserID              string     `bson:"user_id" json:"user_id"`
	Name                string     `bson:"name" json:"name"`
	TargetAmount        float64    `bson:"target_amount" json:"target_amount"`
	CurrentAmount       float64    `bson:"current_amount" json:"current_amount"`
	MonthlyContribution float64    `bson:"monthly_contribution" json:"monthly_contribution"`
	TargetDate          *time.Time `bson:"target_date,omitempty" json:"target_date,omitempty"`
	CreatedAt           time.Time  `bson:"created_at" json:"created_at"`
}

// NewSavingsGoal builds a savings goal with a fresh ID and creation timestamp.
func NewSavingsGoal(userID, name string, targetAmount, monthlyContribution float64, targetDate *time.Time) *SavingsGoal {
	return &SavingsGoal{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Name:                name,
		TargetAmount:        targetAmount,
		MonthlyContribution: monthlyContribution,
		TargetDate:          targetDate,
		CreatedAt:           time.Now().UTC(),
	}
}

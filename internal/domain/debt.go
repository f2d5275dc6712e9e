package domain

import (
	"time"

	"github.com/google/uuid"
)

// DebtType classifies a tracked debt.
type DebtType string

const (
	DebtCreditCard   DebtType = "credit_card"
	DebtPersonalLoan DebtType = "personal_loan"
	DebtEMI          DebtType = "emi"
	DebtOther        DebtType = "other"
)

// IsValid reports whether t is one of the known debt types.
func (t DebtType) IsValid() bool {
	switch t {
	case DebtCreditCard, DebtPersonalLoan, DebtEMI, DebtOther:
		return true
	}
	return false
}

// Debt is a tracked liability. Outstanding is read-only input to the payoff
// simulator; the simulator never mutates the stored record.
type Debt struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Name            string    `bson:"name" json:"name"`
	Type            DebtType  `bson:"type" json:"type"`
	Principal       float64   `bson:"principal" json:"principal"`
	Outstanding     float64   `bson:"outstanding" json:"outstanding"`
	InterestRate    float64   `bson:"interest_rate" json:"interest_rate"` // annual, percent
	EMIAmount       float64   `bson:"emi_amount" json:"emi_amount"`
	RemainingTenure int       `bson:"remaining_tenure" json:"remaining_tenure"` // months
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// NewDebt builds a debt record with a fresh ID and creation timestamp.
func NewDebt(userID, name string, debtType DebtType, principal, outstanding, interestRate, emiAmount float64, remainingTenure int) *Debt {
	return &Debt{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            name,
		Type:            debtType,
		Principal:       principal,
		Outstanding:     outstanding,
		InterestRate:    interestRate,
		EMIAmount:       emiAmount,
		RemainingTenure: remainingTenure,
		CreatedAt:       time.Now().UTC(),
	}
}

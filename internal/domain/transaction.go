package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType is the direction of a transaction. Amounts are always
// non-negative; direction is carried separately.
type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// Transaction is one ledger entry for a user. Created by manual entry, CSV
// import, or the sample-data generator; never updated in place apart from
// category backfill.
type Transaction struct {
	ID             string          `bson:"id" json:"id"`
	UserID         string          `bson:"user_id" json:"user_id"`
	Date           time.Time       `bson:"date" json:"date"`
	Amount         float64         `bson:"amount" json:"amount"`
	Type           TransactionType `bson:"type" json:"type"`
	Merchant       string          `bson:"merchant" json:"merchant"`
	Category       Category        `bson:"category" json:"category"`
	Description    string          `bson:"description" json:"description"`
	IsRecurring    bool            `bson:"is_recurring" json:"is_recurring"`
	IsSubscription bool            `bson:"is_subscription" json:"is_subscription"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
}

// NewTransaction builds a transaction with a fresh ID and creation timestamp.
func NewTransaction(userID string, date time.Time, amount float64, txType TransactionType, merchant string, category Category, description string) *Transaction {
	return &Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Date:        date,
		Amount:      amount,
		Type:        txType,
		Merchant:    merchant,
		Category:    category,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

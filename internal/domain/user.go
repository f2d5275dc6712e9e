package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder identified by phone number. The OTP fields hold
// the pending one-time code between send and verify and are cleared on login.
type User struct {
	ID            string     `bson:"id" json:"id"`
	Phone         string     `bson:"phone" json:"phone"`
	Name          string     `bson:"name,omitempty" json:"name,omitempty"`
	MonthlyIncome float64    `bson:"monthly_income" json:"monthly_income"`
	FixedExpenses float64    `bson:"fixed_expenses" json:"fixed_expenses"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	OTP           string     `bson:"otp,omitempty" json:"-"`
	OTPExpiry     *time.Time `bson:"otp_expiry,omitempty" json:"-"`
}

// NewUser builds a user with a fresh ID and creation timestamp.
func NewUser(phone string) *User {
	return &User{
		ID:        uuid.New().String(),
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}

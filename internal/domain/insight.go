package domain

import (
	"time"

	"github.com/google/uuid"
)

// Insight is one AI-generated observation about a user's finances. Insights
// are upserted by (user, title) so a regenerated insight with the same title
// replaces the previous one instead of duplicating it.
type Insight struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Category     string    `bson:"category" json:"category"` // spending, saving or warning
	ImpactAmount *float64  `bson:"impact_amount,omitempty" json:"impact_amount,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// NewInsight builds an insight record with a fresh ID and creation timestamp.
func NewInsight(userID, title, description, category string, impactAmount *float64) *Insight {
	return &Insight{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        title,
		Description:  description,
		Category:     category,
		ImpactAmount: impactAmount,
		CreatedAt:    time.Now().UTC(),
	}
}

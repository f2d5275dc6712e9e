// Package advisor turns analytics output into actionable suggestions: fixed
// expense-reduction rules, tiered savings-rate recommendations, and
// AI-generated insights refreshed over a trailing 60-day window.
package advisor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dvloznov/financewise/internal/domain"
)

// Expense-reduction rule thresholds and assumed savings rates, per category.
const (
	foodThreshold         = 5000
	foodCutRate           = 0.30
	subscriptionThreshold = 1000
	subscriptionCutRate   = 0.40
	transportThreshold    = 3000
	transportCutRate      = 0.20
)

// Suggestion is one triggered expense-reduction rule.
type Suggestion struct {
	Category       domain.Category `json:"category"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	MonthlySavings float64         `json:"monthly_savings"`
	YearlySavings  float64         `json:"yearly_savings"`
}

// ReductionSuggestions applies the fixed expense-reduction rules to one
// month's category totals. subscriptionTotal is the spend on transactions
// flagged as subscriptions, which is tracked separately from the category
// breakdown. Rules are independent; every rule over threshold fires.
func ReductionSuggestions(breakdown map[domain.Category]float64, subscriptionTotal float64) []Suggestion {
	var suggestions []Suggestion

	if food := breakdown[domain.CategoryFood]; food > foodThreshold {
		savings := food * foodCutRate
		suggestions = append(suggestions, Suggestion{
			Category:       domain.CategoryFood,
			Title:          "Reduce Food Delivery",
			Description:    fmt.Sprintf("Cooking at home 3 more times per week could save you ₹%.0f/month", savings),
			MonthlySavings: savings,
			YearlySavings:  savings * 12,
		})
	}

	if subscriptionTotal > subscriptionThreshold {
		savings := subscriptionTotal * subscriptionCutRate
		suggestions = append(suggestions, Suggestion{
			Category:       domain.CategorySubscription,
			Title:          "Review Subscriptions",
			Description:    fmt.Sprintf("You're spending ₹%.0f on subscriptions. Consider sharing family plans.", subscriptionTotal),
			MonthlySavings: savings,
			YearlySavings:  savings * 12,
		})
	}

	if transport := breakdown[domain.CategoryTransport]; transport > transportThreshold {
		savings := transport * transportCutRate
		suggestions = append(suggestions, Suggestion{
			Category:       domain.CategoryTransport,
			Title:          "Optimize Commute",
			Description:    fmt.Sprintf("Using public transport twice a week could save ₹%.0f/month", savings),
			MonthlySavings: savings,
			YearlySavings:  savings * 12,
		})
	}

	return suggestions
}

// ExpenseReduction computes the current-month category totals for a user and
// applies the reduction rules.
func (a *Advisor) ExpenseReduction(ctx context.Context, userID string, now time.Time) ([]Suggestion, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := startOfMonth.AddDate(0, 1, 0)

	txs, err := a.txns.FindInRange(ctx, userID, domain.TypeDebit, startOfMonth, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("ExpenseReduction: loading debits: %w", err)
	}

	breakdown := make(map[domain.Category]float64)
	var subscriptionTotal float64
	for _, tx := range txs {
		breakdown[tx.Category] += tx.Amount
		if tx.IsSubscription {
			subscriptionTotal += tx.Amount
		}
	}

	return ReductionSuggestions(breakdown, subscriptionTotal), nil
}

// SavingsTier is one savings-rate recommendation.
type SavingsTier struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// SavingsTiers recommends three monthly savings amounts based on the user's
// remaining balance and current spending. All tiers are zero when nothing
// remains to save from.
func SavingsTiers(remainingBalance, spending float64) []SavingsTier {
	safe, moderate, aggressive := 0.0, 0.0, 0.0
	if remainingBalance > 0 {
		safe = remainingBalance * 0.2
		moderate = remainingBalance * 0.3
		aggressive = (remainingBalance + spending*0.1) * 0.35
	}

	return []SavingsTier{
		{
			Type:        "safe",
			Amount:      round2(safe),
			Description: "20% of your remaining balance - conservative and sustainable",
		},
		{
			Type:        "moderate",
			Amount:      round2(moderate),
			Description: "30% of remaining - good progress toward your goals",
		},
		{
			Type:        "aggressive",
			Amount:      round2(aggressive),
			Description: "35% with 10% expense reduction - fastest goal achievement",
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

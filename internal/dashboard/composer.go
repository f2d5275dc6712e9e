// Package dashboard assembles the consolidated user view: spending summary,
// debt and savings totals, recent activity, and exactly one recommended next
// action.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dvloznov/financewise/internal/analytics"
	"github.com/dvloznov/financewise/internal/domain"
)

const (
	recentTransactionCount = 5
	// Remaining balance above this triggers the savings recommendation when
	// no debt recommendation applies.
	savingsBoostThreshold = 5000
)

// DebtSource lists a user's debts. *store.DebtRepository satisfies it.
type DebtSource interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Debt, error)
}

// GoalSource lists a user's savings goals. *store.SavingsGoalRepository
// satisfies it.
type GoalSource interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.SavingsGoal, error)
}

// RecentSource returns a user's most recent transactions.
// *store.TransactionRepository satisfies it.
type RecentSource interface {
	Recent(ctx context.Context, userID string, n int64) ([]*domain.Transaction, error)
}

// SummarySource computes the monthly analytics summary.
// *analytics.Aggregator satisfies it.
type SummarySource interface {
	Summary(ctx context.Context, userID string, now time.Time) (*analytics.Summary, error)
}

// Spending is the summary slice of the dashboard.
type Spending struct {
	ThisMonth        float64 `json:"this_month"`
	LastMonth        float64 `json:"last_month"`
	ChangePercentage float64 `json:"change_percentage"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// DebtSummary totals the user's tracked debts.
type DebtSummary struct {
	Total      float64 `json:"total"`
	MonthlyEMI float64 `json:"monthly_emi"`
	Count      int     `json:"count"`
}

// SavingsSummary totals the user's savings goals.
type SavingsSummary struct {
	TotalSaved  float64 `json:"total_saved"`
	TotalTarget float64 `json:"total_target"`
	Progress    float64 `json:"progress"`
	GoalsCount  int     `json:"goals_count"`
}

// Action is the single recommended next step.
type Action struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// View is the complete dashboard payload.
type View struct {
	Spending           Spending                    `json:"spending"`
	Income             float64                     `json:"income"`
	Debts              DebtSummary                 `json:"debts"`
	Savings            SavingsSummary              `json:"savings"`
	CategoryBreakdown  map[domain.Category]float64 `json:"category_breakdown"`
	RecentTransactions []*domain.Transaction       `json:"recent_transactions"`
	RecommendedAction  Action                      `json:"recommended_action"`
}

// Composer builds dashboard views from the injected sources.
type Composer struct {
	summaries SummarySource
	debts     DebtSource
	goals     GoalSource
	recent    RecentSource
}

// NewComposer creates a composer over the given sources.
func NewComposer(summaries SummarySource, debts DebtSource, goals GoalSource, recent RecentSource) *Composer {
	return &Composer{
		summaries: summaries,
		debts:     debts,
		goals:     goals,
		recent:    recent,
	}
}

// Compose assembles the full dashboard for one user.
func (c *Composer) Compose(ctx context.Context, userID string, now time.Time) (*View, error) {
	summary, err := c.summaries.Summary(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("Compose: analytics summary: %w", err)
	}

	debts, err := c.debts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Compose: listing debts: %w", err)
	}
	var totalDebt, totalEMI float64
	for _, d := range debts {
		totalDebt += d.Outstanding
		totalEMI += d.EMIAmount
	}

	goals, err := c.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Compose: listing goals: %w", err)
	}
	var totalSaved, totalTarget float64
	for _, g := range goals {
		totalSaved += g.CurrentAmount
		totalTarget += g.TargetAmount
	}
	progress := 0.0
	if totalTarget > 0 {
		progress = math.Round(totalSaved/totalTarget*1000) / 10
	}

	recent, err := c.recent.Recent(ctx, userID, recentTransactionCount)
	if err != nil {
		return nil, fmt.Errorf("Compose: recent transactions: %w", err)
	}

	return &View{
		Spending: Spending{
			ThisMonth:        summary.ThisMonthSpending,
			LastMonth:        summary.LastMonthSpending,
			ChangePercentage: summary.ChangePercentage,
			RemainingBalance: summary.RemainingBalance,
		},
		Income: summary.TotalIncome,
		Debts: DebtSummary{
			Total:      totalDebt,
			MonthlyEMI: totalEMI,
			Count:      len(debts),
		},
		Savings: SavingsSummary{
			TotalSaved:  totalSaved,
			TotalTarget: totalTarget,
			Progress:    progress,
			GoalsCount:  len(goals),
		},
		CategoryBreakdown:  summary.CategoryBreakdown,
		RecentTransactions: recent,
		RecommendedAction:  recommendAction(summary.RemainingBalance, totalDebt, totalEMI),
	}, nil
}

// recommendAction picks exactly one next step by priority: extra debt payment
// when there is debt and headroom beyond the monthly installments, then a
// savings boost when the month left a healthy surplus, otherwise an expense
// review.
func recommendAction(remaining, totalDebt, totalEMI float64) Action {
	switch {
	case totalDebt > 0 && remaining > totalEMI:
		return Action{
			Type:        "debt",
			Title:       "Pay Extra on Debt",
			Description: fmt.Sprintf("You have ₹%.0f extra. Consider paying ₹2,000 more on your highest interest debt.", remaining-totalEMI),
		}
	case remaining > savingsBoostThreshold:
		return Action{
			Type:        "savings",
			Title:       "Boost Savings",
			Description: fmt.Sprintf("Great month! Move ₹%.0f to your savings goal.", remaining*0.2),
		}
	default:
		return Action{
			Type:        "expense",
			Title:       "Review Expenses",
			Description: "Check your food delivery expenses - they might be higher than usual.",
		}
	}
}

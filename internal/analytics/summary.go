// Package analytics reduces stored transactions into monthly spending
// summaries. Windows are calendar months anchored to the evaluation time:
// start of month inclusive, next month start exclusive.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dvloznov/financewise/internal/domain"
)

// TransactionSource is the slice of the transaction store the aggregator
// needs. *store.TransactionRepository satisfies it.
type TransactionSource interface {
	FindInRange(ctx context.Context, userID string, txType domain.TransactionType, start, end time.Time) ([]*domain.Transaction, error)
}

// Summary is the monthly spending rollup for one user. All monetary values
// are rounded to two decimal places; the change percentage to one.
type Summary struct {
	ThisMonthSpending float64                     `json:"this_month_spending"`
	LastMonthSpending float64                     `json:"last_month_spending"`
	ChangePercentage  float64                     `json:"change_percentage"`
	TotalIncome       float64                     `json:"total_income"`
	RemainingBalance  float64                     `json:"remaining_balance"`
	CategoryBreakdown map[domain.Category]float64 `json:"category_breakdown"`
	TransactionCount  int                         `json:"transaction_count"`
}

// Aggregator computes spending summaries over a transaction source.
type Aggregator struct {
	txns TransactionSource
}

// NewAggregator creates an aggregator over the given transaction source.
func NewAggregator(txns TransactionSource) *Aggregator {
	return &Aggregator{txns: txns}
}

// Summary computes the current-month rollup for a user, compared against the
// prior calendar month. A user with no transactions gets an all-zero summary.
func (a *Aggregator) Summary(ctx context.Context, userID string, now time.Time) (*Summary, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := startOfMonth.AddDate(0, 1, 0)
	lastMonthStart := startOfMonth.AddDate(0, -1, 0)

	thisMonth, err := a.txns.FindInRange(ctx, userID, domain.TypeDebit, startOfMonth, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("Summary: this month debits: %w", err)
	}
	lastMonth, err := a.txns.FindInRange(ctx, userID, domain.TypeDebit, lastMonthStart, startOfMonth)
	if err != nil {
		return nil, fmt.Errorf("Summary: last month debits: %w", err)
	}
	income, err := a.txns.FindInRange(ctx, userID, domain.TypeCredit, startOfMonth, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("Summary: this month credits: %w", err)
	}

	var thisMonthTotal, lastMonthTotal, totalIncome float64
	breakdown := make(map[domain.Category]float64)

	for _, tx := range thisMonth {
		thisMonthTotal += tx.Amount
		breakdown[tx.Category] += tx.Amount
	}
	for _, tx := range lastMonth {
		lastMonthTotal += tx.Amount
	}
	for _, tx := range income {
		totalIncome += tx.Amount
	}

	// Zero when the prior month has no spending, to avoid division by zero.
	changePct := 0.0
	if lastMonthTotal > 0 {
		changePct = round1((thisMonthTotal - lastMonthTotal) / lastMonthTotal * 100)
	}

	return &Summary{
		ThisMonthSpending: round2(thisMonthTotal),
		LastMonthSpending: round2(lastMonthTotal),
		ChangePercentage:  changePct,
		TotalIncome:       round2(totalIncome),
		RemainingBalance:  round2(totalIncome - thisMonthTotal),
		CategoryBreakdown: breakdown,
		TransactionCount:  len(thisMonth),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

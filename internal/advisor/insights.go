package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/ai"
	"github.com/dvloznov/financewise/internal/domain"
)

// insightWindow is the trailing window of transactions summarized for the
// insight generator.
const insightWindow = 60 * 24 * time.Hour

// TransactionSource is the slice of the transaction store the advisor needs.
// *store.TransactionRepository satisfies it.
type TransactionSource interface {
	FindInRange(ctx context.Context, userID string, txType domain.TransactionType, start, end time.Time) ([]*domain.Transaction, error)
	FindSince(ctx context.Context, userID string, since time.Time) ([]*domain.Transaction, error)
}

// InsightSink stores generated insights. *store.InsightRepository satisfies
// it.
type InsightSink interface {
	Upsert(ctx context.Context, insight *domain.Insight) error
}

// Advisor produces suggestions and AI insights for one user at a time.
type Advisor struct {
	txns      TransactionSource
	insights  InsightSink
	generator ai.InsightGenerator
	log       zerolog.Logger
}

// New creates an advisor over the given collaborators.
func New(txns TransactionSource, insights InsightSink, generator ai.InsightGenerator, log zerolog.Logger) *Advisor {
	return &Advisor{
		txns:      txns,
		insights:  insights,
		generator: generator,
		log:       log,
	}
}

// RefreshInsights summarizes the trailing 60 days of spending, asks the
// generator for insights, and upserts each one keyed by (user, title) so
// repeated runs overwrite rather than duplicate. A user with no transactions,
// or a generator failure, yields an empty list without error.
func (a *Advisor) RefreshInsights(ctx context.Context, userID string, now time.Time) ([]*domain.Insight, error) {
	txs, err := a.txns.FindSince(ctx, userID, now.Add(-insightWindow))
	if err != nil {
		return nil, fmt.Errorf("RefreshInsights: loading transactions: %w", err)
	}
	if len(txs) == 0 {
		return []*domain.Insight{}, nil
	}

	totals := make(map[domain.Category]float64)
	for _, tx := range txs {
		if tx.Type == domain.TypeDebit {
			totals[tx.Category] += tx.Amount
		}
	}

	generated := a.generator.Generate(ctx, ai.SpendingSummary{
		CategoryTotals:   totals,
		TransactionCount: len(txs),
	})

	insights := make([]*domain.Insight, 0, len(generated))
	for _, g := range generated {
		insight := domain.NewInsight(userID, g.Title, g.Description, g.Category, g.ImpactAmount)
		if err := a.insights.Upsert(ctx, insight); err != nil {
			return nil, fmt.Errorf("RefreshInsights: storing insight %q: %w", g.Title, err)
		}
		insights = append(insights, insight)
	}

	return insights, nil
}

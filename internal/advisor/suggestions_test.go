package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/financewise/internal/ai"
	"github.com/dvloznov/financewise/internal/domain"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestReductionSuggestions_FoodOverThreshold(t *testing.T) {
	breakdown := map[domain.Category]float64{domain.CategoryFood: 6000}

	suggestions := ReductionSuggestions(breakdown, 0)

	require.Len(t, suggestions, 1)
	require.Equal(t, domain.CategoryFood, suggestions[0].Category)
	require.Equal(t, 1800.0, suggestions[0].MonthlySavings)
	require.Equal(t, 21600.0, suggestions[0].YearlySavings)
}

func TestReductionSuggestions_UnderThresholds(t *testing.T) {
	breakdown := map[domain.Category]float64{
		domain.CategoryFood:      5000, // at threshold, not over
		domain.CategoryTransport: 2999,
	}

	require.Empty(t, ReductionSuggestions(breakdown, 1000))
}

func TestReductionSuggestions_AllRulesIndependent(t *testing.T) {
	breakdown := map[domain.Category]float64{
		domain.CategoryFood:      8000,
		domain.CategoryTransport: 4000,
	}

	suggestions := ReductionSuggestions(breakdown, 2000)

	require.Len(t, suggestions, 3)
	require.Equal(t, 2400.0, suggestions[0].MonthlySavings) // food 8000 * 0.3
	require.Equal(t, 800.0, suggestions[1].MonthlySavings)  // subscriptions 2000 * 0.4
	require.Equal(t, 800.0, suggestions[2].MonthlySavings)  // transport 4000 * 0.2
}

func TestSavingsTiers(t *testing.T) {
	tiers := SavingsTiers(10000, 20000)

	require.Len(t, tiers, 3)
	require.Equal(t, "safe", tiers[0].Type)
	require.Equal(t, 2000.0, tiers[0].Amount)
	require.Equal(t, "moderate", tiers[1].Type)
	require.Equal(t, 3000.0, tiers[1].Amount)
	require.Equal(t, "aggressive", tiers[2].Type)
	require.Equal(t, 4200.0, tiers[2].Amount) // (10000 + 2000) * 0.35
}

func TestSavingsTiers_NonPositiveRemaining(t *testing.T) {
	for _, remaining := range []float64{0, -5000} {
		tiers := SavingsTiers(remaining, 20000)
		require.Len(t, tiers, 3)
		for _, tier := range tiers {
			require.Zerof(t, tier.Amount, "tier %s should be zero when remaining is %v", tier.Type, remaining)
		}
	}
}

// fakeSource serves canned transactions for the advisor.
type fakeSource struct {
	txs []*domain.Transaction
}

func (f *fakeSource) FindInRange(_ context.Context, userID string, txType domain.TransactionType, start, end time.Time) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range f.txs {
		if tx.UserID == userID && tx.Type == txType && !tx.Date.Before(start) && tx.Date.Before(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeSource) FindSince(_ context.Context, userID string, since time.Time) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, tx := range f.txs {
		if tx.UserID == userID && !tx.Date.Before(since) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func TestExpenseReduction_SubscriptionFlagDrivesRule(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	source := &fakeSource{txs: []*domain.Transaction{
		{UserID: "u1", Date: date, Amount: 800, Type: domain.TypeDebit, Category: domain.CategoryEntertainment, IsSubscription: true},
		{UserID: "u1", Date: date, Amount: 500, Type: domain.TypeDebit, Category: domain.CategorySubscription, IsSubscription: true},
		{UserID: "u1", Date: date, Amount: 300, Type: domain.TypeDebit, Category: domain.CategoryFood},
	}}

	advisor := New(source, nil, nil, testLogger())
	suggestions, err := advisor.ExpenseReduction(context.Background(), "u1", now)
	require.NoError(t, err)

	// Flagged spend is 1300 > 1000, even though no single category crosses
	// its own threshold.
	require.Len(t, suggestions, 1)
	require.Equal(t, domain.CategorySubscription, suggestions[0].Category)
	require.Equal(t, 520.0, suggestions[0].MonthlySavings)
}

// fixedGenerator returns the same insights on every call.
type fixedGenerator struct {
	insights []ai.GeneratedInsight
	calls    int
}

func (g *fixedGenerator) Generate(_ context.Context, _ ai.SpendingSummary) []ai.GeneratedInsight {
	g.calls++
	return g.insights
}

// memorySink collects upserted insights keyed by (user, title).
type memorySink struct {
	byKey map[string]*domain.Insight
}

func newMemorySink() *memorySink {
	return &memorySink{byKey: make(map[string]*domain.Insight)}
}

func (s *memorySink) Upsert(_ context.Context, insight *domain.Insight) error {
	s.byKey[insight.UserID+"|"+insight.Title] = insight
	return nil
}

func TestRefreshInsights(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	impact := 1800.0

	source := &fakeSource{txs: []*domain.Transaction{
		{UserID: "u1", Date: now.AddDate(0, 0, -10), Amount: 6000, Type: domain.TypeDebit, Category: domain.CategoryFood},
		{UserID: "u1", Date: now.AddDate(0, 0, -90), Amount: 9999, Type: domain.TypeDebit, Category: domain.CategoryFood}, // outside window
	}}
	generator := &fixedGenerator{insights: []ai.GeneratedInsight{
		{Title: "High food spend", Description: "Cut delivery", Category: "warning", ImpactAmount: &impact},
	}}
	sink := newMemorySink()

	advisor := New(source, sink, generator, testLogger())

	insights, err := advisor.RefreshInsights(context.Background(), "u1", now)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	require.Equal(t, "u1", insights[0].UserID)
	require.Equal(t, "High food spend", insights[0].Title)

	// Repeated runs overwrite the same key instead of duplicating.
	_, err = advisor.RefreshInsights(context.Background(), "u1", now)
	require.NoError(t, err)
	require.Len(t, sink.byKey, 1)
	require.Equal(t, 2, generator.calls)
}

func TestRefreshInsights_NoTransactions(t *testing.T) {
	generator := &fixedGenerator{insights: []ai.GeneratedInsight{{Title: "never"}}}
	advisor := New(&fakeSource{}, newMemorySink(), generator, testLogger())

	insights, err := advisor.RefreshInsights(context.Background(), "u1", time.Now())
	require.NoError(t, err)
	require.Empty(t, insights)
	require.Zero(t, generator.calls, "generator must not be called for users with no data")
}

func TestRefreshInsights_GeneratorReturnsNothing(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	source := &fakeSource{txs: []*domain.Transaction{
		{UserID: "u1", Date: now.AddDate(0, 0, -1), Amount: 100, Type: domain.TypeDebit, Category: domain.CategoryFood},
	}}
	advisor := New(source, newMemorySink(), &fixedGenerator{}, testLogger())

	insights, err := advisor.RefreshInsights(context.Background(), "u1", now)
	require.NoError(t, err)
	require.Empty(t, insights)
}

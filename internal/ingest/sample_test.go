package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dvloznov/financewise/internal/domain"
)

type memoryDebtSink struct {
	debts []*domain.Debt
}

func (s *memoryDebtSink) InsertMany(_ context.Context, debts []*domain.Debt) error {
	s.debts = append(s.debts, debts...)
	return nil
}

type memoryGoalSink struct {
	goals []*domain.SavingsGoal
}

func (s *memoryGoalSink) Insert(_ context.Context, goal *domain.SavingsGoal) error {
	s.goals = append(s.goals, goal)
	return nil
}

func TestSampleGenerator(t *testing.T) {
	txSink := &memorySink{}
	debtSink := &memoryDebtSink{}
	goalSink := &memoryGoalSink{}

	result, err := NewSampleGenerator(txSink, debtSink, goalSink).Generate(context.Background(), "u1")
	require.NoError(t, err)

	// 60 days at 2-5 transactions per day, plus 2 salary credits.
	require.GreaterOrEqual(t, result.Transactions, 60*2+2)
	require.LessOrEqual(t, result.Transactions, 60*5+2)
	require.Equal(t, len(txSink.txs), result.Transactions)
	require.Equal(t, 3, result.Debts)
	require.Equal(t, 1, result.Goals)

	var credits int
	for _, tx := range txSink.txs {
		require.Equal(t, "u1", tx.UserID)
		require.GreaterOrEqual(t, tx.Amount, 0.0)
		require.True(t, tx.Category.IsValid(), "category %q", tx.Category)

		switch tx.Type {
		case domain.TypeCredit:
			credits++
			require.Equal(t, domain.CategorySalary, tx.Category)
			require.Equal(t, 75000.0, tx.Amount)
		case domain.TypeDebit:
			if tx.Category == domain.CategorySubscription {
				require.True(t, tx.IsSubscription)
				require.True(t, tx.IsRecurring)
			}
		}
	}
	require.Equal(t, 2, credits)

	require.Len(t, debtSink.debts, 3)
	var totalOutstanding float64
	for _, d := range debtSink.debts {
		require.Equal(t, "u1", d.UserID)
		totalOutstanding += d.Outstanding
	}
	require.Equal(t, 246000.0, totalOutstanding)

	goal := goalSink.goals[0]
	require.Equal(t, "Emergency Fund", goal.Name)
	require.Equal(t, 300000.0, goal.TargetAmount)
	require.Equal(t, 75000.0, goal.CurrentAmount)
	require.NotNil(t, goal.TargetDate)
}

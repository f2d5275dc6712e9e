package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/financewise/internal/analytics"
	"github.com/dvloznov/financewise/internal/domain"
)

type fakeSummaries struct {
	summary *analytics.Summary
}

func (f *fakeSummaries) Summary(context.Context, string, time.Time) (*analytics.Summary, error) {
	return f.summary, nil
}

type fakeDebts struct {
	debts []*domain.Debt
}

func (f *fakeDebts) ListByUser(context.Context, string) ([]*domain.Debt, error) {
	return f.debts, nil
}

type fakeGoals struct {
	goals []*domain.SavingsGoal
}

func (f *fakeGoals) ListByUser(context.Context, string) ([]*domain.SavingsGoal, error) {
	return f.goals, nil
}

type fakeRecent struct {
	txs []*domain.Transaction
}

func (f *fakeRecent) Recent(_ context.Context, _ string, n int64) ([]*domain.Transaction, error) {
	if int64(len(f.txs)) > n {
		return f.txs[:n], nil
	}
	return f.txs, nil
}

func composer(summary *analytics.Summary, debts []*domain.Debt, goals []*domain.SavingsGoal, txs []*domain.Transaction) *Composer {
	return NewComposer(
		&fakeSummaries{summary: summary},
		&fakeDebts{debts: debts},
		&fakeGoals{goals: goals},
		&fakeRecent{txs: txs},
	)
}

func TestCompose(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	summary := &analytics.Summary{
		ThisMonthSpending: 30000,
		LastMonthSpending: 25000,
		ChangePercentage:  20,
		TotalIncome:       75000,
		RemainingBalance:  45000,
		CategoryBreakdown: map[domain.Category]float64{domain.CategoryFood: 9000},
	}
	debts := []*domain.Debt{
		{Outstanding: 42000, EMIAmount: 5000},
		{Outstanding: 156000, EMIAmount: 8500},
	}
	goals := []*domain.SavingsGoal{
		{CurrentAmount: 75000, TargetAmount: 300000},
	}
	txs := make([]*domain.Transaction, 8)
	for i := range txs {
		txs[i] = &domain.Transaction{ID: "tx", UserID: "u1"}
	}

	view, err := composer(summary, debts, goals, txs).Compose(context.Background(), "u1", now)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if view.Debts.Total != 198000 || view.Debts.MonthlyEMI != 13500 || view.Debts.Count != 2 {
		t.Errorf("Debts = %+v", view.Debts)
	}
	if view.Savings.TotalSaved != 75000 || view.Savings.TotalTarget != 300000 {
		t.Errorf("Savings = %+v", view.Savings)
	}
	if view.Savings.Progress != 25 {
		t.Errorf("Progress = %v, want 25", view.Savings.Progress)
	}
	if len(view.RecentTransactions) != 5 {
		t.Errorf("RecentTransactions length = %d, want 5", len(view.RecentTransactions))
	}
	if view.Income != 75000 || view.Spending.RemainingBalance != 45000 {
		t.Errorf("Income/Remaining = %v/%v", view.Income, view.Spending.RemainingBalance)
	}
}

func TestCompose_ProgressZeroWhenNoTarget(t *testing.T) {
	view, err := composer(&analytics.Summary{}, nil, nil, nil).Compose(context.Background(), "u1", time.Now())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if view.Savings.Progress != 0 {
		t.Errorf("Progress = %v, want 0 when target is 0", view.Savings.Progress)
	}
}

func TestRecommendAction(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		totalDebt float64
		totalEMI  float64
		wantType  string
	}{
		{
			name:      "debt with headroom beyond installments",
			remaining: 20000,
			totalDebt: 100000,
			totalEMI:  13500,
			wantType:  "debt",
		},
		{
			name:      "no debt and healthy surplus",
			remaining: 20000,
			wantType:  "savings",
		},
		{
			name:      "debt but remaining below installments",
			remaining: 10000,
			totalDebt: 100000,
			totalEMI:  13500,
			wantType:  "savings",
		},
		{
			name:      "tight month",
			remaining: 3000,
			wantType:  "expense",
		},
		{
			name:      "negative remaining",
			remaining: -2000,
			totalDebt: 50000,
			totalEMI:  5000,
			wantType:  "expense",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := recommendAction(tt.remaining, tt.totalDebt, tt.totalEMI)
			if action.Type != tt.wantType {
				t.Errorf("action type = %q, want %q", action.Type, tt.wantType)
			}
			if action.Title == "" || action.Description == "" {
				t.Errorf("action missing text: %+v", action)
			}
		})
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/domain"
	"github.com/dvloznov/financewise/internal/ingest"
)

type memoryTxSink struct {
	txs []*domain.Transaction
}

func (s *memoryTxSink) InsertMany(_ context.Context, txs []*domain.Transaction) error {
	s.txs = append(s.txs, txs...)
	return nil
}

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

func TestMockSyncReportsSyncedCounts(t *testing.T) {
	samples := ingest.NewSampleGenerator(&memoryTxSink{}, &memoryDebtSink{}, &memoryGoalSink{})
	h := NewTransactionsHandler(nil, nil, nil, samples, zerolog.Nop())

	req := httptest.NewRequest("POST", "/api/transactions/mock-sync/user-1", nil)
	rec := httptest.NewRecorder()

	h.MockSync(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
		Synced  struct {
			Transactions int `json:"transactions"`
			Debts        int `json:"debts"`
			Goals        int `json:"goals"`
		} `json:"synced"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.Message != "Bank sync completed" {
		t.Errorf("message = %q, want %q", resp.Message, "Bank sync completed")
	}
	if resp.Synced.Transactions == 0 {
		t.Error("synced.transactions = 0, want > 0")
	}
	if resp.Synced.Debts != 3 {
		t.Errorf("synced.debts = %d, want 3", resp.Synced.Debts)
	}
	if resp.Synced.Goals != 1 {
		t.Errorf("synced.goals = %d, want 1", resp.Synced.Goals)
	}
}

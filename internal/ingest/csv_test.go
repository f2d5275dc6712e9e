package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/financewise/internal/domain"
)

// memorySink collects inserted transactions.
type memorySink struct {
	txs []*domain.Transaction
}

func (s *memorySink) InsertMany(_ context.Context, txs []*domain.Transaction) error {
	s.txs = append(s.txs, txs...)
	return nil
}

// keywordClassifier is a deterministic stand-in for the AI classifier.
type keywordClassifier struct{}

func (keywordClassifier) Classify(_ context.Context, merchant, _ string) domain.Category {
	if strings.Contains(strings.ToLower(merchant), "swiggy") {
		return domain.CategoryFood
	}
	return domain.CategoryOther
}

func newTestImporter() (*Importer, *memorySink) {
	sink := &memorySink{}
	return NewImporter(sink, keywordClassifier{}, zerolog.Nop()), sink
}

func TestImportCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"date,amount,type,merchant",
		"2026-02-01,450.50,debit,Swiggy",
		"2026-02-02,75000,credit,Employer",
	}, "\n")

	importer, sink := newTestImporter()
	count, err := importer.ImportCSV(context.Background(), "u1", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Len(t, sink.txs, 2)

	first := sink.txs[0]
	require.Equal(t, "u1", first.UserID)
	require.Equal(t, 450.50, first.Amount)
	require.Equal(t, domain.TypeDebit, first.Type)
	require.Equal(t, domain.CategoryFood, first.Category, "classifier should categorize by merchant")
	require.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), first.Date)

	require.Equal(t, domain.TypeCredit, sink.txs[1].Type)
	require.Equal(t, domain.CategoryOther, sink.txs[1].Category)
}

func TestImportCSV_HeaderVariantsAndEuropeanDates(t *testing.T) {
	csvData := strings.Join([]string{
		"Transaction Date,Amount,Type,Narration",
		"15/02/2026,1200,DEBIT,Electricity Board",
	}, "\n")

	importer, sink := newTestImporter()
	_, err := importer.ImportCSV(context.Background(), "u1", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, sink.txs, 1)

	tx := sink.txs[0]
	require.Equal(t, time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC), tx.Date)
	require.Equal(t, domain.TypeDebit, tx.Type)
	require.Equal(t, "Electricity Board", tx.Merchant)
}

func TestImportCSV_CreditColumnHeuristic(t *testing.T) {
	csvData := strings.Join([]string{
		"Date,Debit,Credit,Description",
		"2026-02-01,500,,Swiggy",
		"2026-02-03,,75000,Employer",
	}, "\n")

	importer, sink := newTestImporter()
	_, err := importer.ImportCSV(context.Background(), "u1", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, sink.txs, 2)

	require.Equal(t, domain.TypeDebit, sink.txs[0].Type)
	require.Equal(t, 500.0, sink.txs[0].Amount)
	require.Equal(t, domain.TypeCredit, sink.txs[1].Type)
	require.Equal(t, 75000.0, sink.txs[1].Amount)
}

func TestImportCSV_NegativeAmountsTakenAbsolute(t *testing.T) {
	csvData := "date,amount,type,merchant\n2026-02-01,-900,debit,Amazon\n"

	importer, sink := newTestImporter()
	_, err := importer.ImportCSV(context.Background(), "u1", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 900.0, sink.txs[0].Amount)
}

func TestImportCSV_UnparseableDateFallsBackToNow(t *testing.T) {
	csvData := "date,amount,type,merchant\nnot-a-date,100,debit,Shop\n"

	importer, sink := newTestImporter()
	before := time.Now().UTC()
	_, err := importer.ImportCSV(context.Background(), "u1", strings.NewReader(csvData))
	require.NoError(t, err)

	tx := sink.txs[0]
	require.False(t, tx.Date.Before(before.Add(-time.Minute)), "date should fall back to import time, got %v", tx.Date)
}

func TestImportCSV_UnparseableAmountFailsBatch(t *testing.T) {
	csvData := "date,amount,type,merchant\n2026-02-01,abc,debit,Shop\n"

	importer, sink := newTestImporter()
	_, err := importer.ImportCSV(context.Background(), "u1", strings.NewReader(csvData))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unparseable amount")
	require.Empty(t, sink.txs, "a failed batch must insert nothing")
}

func TestImportCSV_MissingMerchantDefaultsToUnknown(t *testing.T) {
	csvData := "date,amount,type\n2026-02-01,100,debit\n"

	importer, sink := newTestImporter()
	_, err := importer.ImportCSV(context.Background(), "u1", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, "Unknown", sink.txs[0].Merchant)
}

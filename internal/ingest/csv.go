// Package ingest brings transactions into the store from outside sources:
// uploaded CSV bank statements and the synthetic generator backing the demo
// bank-sync flow.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/ai"
	"github.com/dvloznov/financewise/internal/domain"
)

// CSV date formats accepted, tried in order. Rows with a date in neither
// format fall back to the import time.
var csvDateFormats = []string{"2006-01-02", "02/01/2006"}

// TransactionSink stores imported transactions.
// *store.TransactionRepository satisfies it.
type TransactionSink interface {
	InsertMany(ctx context.Context, txs []*domain.Transaction) error
}

// Importer parses CSV bank statements into categorized transactions.
type Importer struct {
	txns       TransactionSink
	classifier ai.Classifier
	log        zerolog.Logger
}

// NewImporter creates a CSV importer over the given sink and classifier.
func NewImporter(txns TransactionSink, classifier ai.Classifier, log zerolog.Logger) *Importer {
	return &Importer{txns: txns, classifier: classifier, log: log}
}

// ImportCSV parses the statement and stores the resulting transactions for
// the user. It returns the number of imported rows. A malformed row fails
// the whole batch with the reason.
func (i *Importer) ImportCSV(ctx context.Context, userID string, r io.Reader) (int, error) {
	txs, err := i.parse(ctx, userID, r, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err := i.txns.InsertMany(ctx, txs); err != nil {
		return 0, fmt.Errorf("ImportCSV: storing transactions: %w", err)
	}
	return len(txs), nil
}

// parse reads every row, tolerating the column-name variants that different
// bank exports use. Each row is categorized through the classifier.
func (i *Importer) parse(ctx context.Context, userID string, r io.Reader, now time.Time) ([]*domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("parse: reading header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}

	var txs []*domain.Transaction
	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse: row %d: %w", rowNum, err)
		}

		tx, err := i.parseRow(ctx, userID, columns, row, now)
		if err != nil {
			return nil, fmt.Errorf("parse: row %d: %w", rowNum, err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

func (i *Importer) parseRow(ctx context.Context, userID string, columns map[string]int, row []string, now time.Time) (*domain.Transaction, error) {
	date := now
	if dateStr := field(columns, row, "date", "Date", "Transaction Date"); dateStr != "" {
		for _, format := range csvDateFormats {
			if parsed, err := time.Parse(format, dateStr); err == nil {
				date = parsed
				break
			}
		}
	}

	amount := 0.0
	if amountStr := field(columns, row, "amount", "Amount", "Debit", "Credit"); amountStr != "" {
		parsed, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("unparseable amount %q", amountStr)
		}
		amount = math.Abs(parsed)
	}

	merchant := field(columns, row, "merchant", "Merchant", "Description", "Narration")
	if merchant == "" {
		merchant = "Unknown"
	}

	txType := domain.TransactionType(strings.ToLower(field(columns, row, "type", "Type")))
	if txType != domain.TypeCredit && txType != domain.TypeDebit {
		// No usable type column: infer direction from the credit column.
		txType = domain.TypeDebit
		if creditStr := field(columns, row, "Credit", "credit"); creditStr != "" {
			if credit, err := strconv.ParseFloat(creditStr, 64); err == nil && credit > 0 {
				txType = domain.TypeCredit
			}
		}
	}

	category := i.classifier.Classify(ctx, merchant, "")

	tx := domain.NewTransaction(userID, date, amount, txType, merchant, category, merchant)
	return tx, nil
}

// field returns the first non-empty value among the column-name variants.
func field(columns map[string]int, row []string, names ...string) string {
	for _, name := range names {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			continue
		}
		if value := strings.TrimSpace(row[idx]); value != "" {
			return value
		}
	}
	return ""
}

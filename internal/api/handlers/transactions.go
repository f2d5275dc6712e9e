package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/ai"
	"github.com/dvloznov/financewise/internal/api/middleware"
	"github.com/dvloznov/financewise/internal/domain"
	"github.com/dvloznov/financewise/internal/ingest"
	"github.com/dvloznov/financewise/internal/store"
)

const defaultTransactionLimit = 100

// TransactionsHandler handles transaction listing, creation and import.
type TransactionsHandler struct {
	txns       *store.TransactionRepository
	classifier ai.Classifier
	importer   *ingest.Importer
	samples    *ingest.SampleGenerator
	log        zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(txns *store.TransactionRepository, classifier ai.Classifier, importer *ingest.Importer, samples *ingest.SampleGenerator, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{txns: txns, classifier: classifier, importer: importer, samples: samples, log: log}
}

// List handles GET /api/transactions/{user_id}?limit=&category=
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	limit := int64(defaultTransactionLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	var category domain.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		category = domain.Category(raw)
		if !category.IsValid() {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
			return
		}
	}

	txns, err := h.txns.ListByUser(r.Context(), userID, category, limit)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, txns)
}

// Create handles POST /api/transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string  `json:"user_id"`
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Merchant    string  `json:"merchant"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Merchant == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id and merchant are required")
		return
	}
	if req.Amount < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amount must be non-negative")
		return
	}

	txType := domain.TransactionType(strings.ToLower(req.Type))
	if txType != domain.TypeCredit && txType != domain.TypeDebit {
		middleware.WriteError(w, http.StatusBadRequest, "Type must be credit or debit")
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Date must be RFC 3339")
			return
		}
		date = parsed
	}

	category := domain.Category(req.Category)
	if req.Category == "" {
		category = h.classifier.Classify(r.Context(), req.Merchant, req.Description)
	} else if !category.IsValid() {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	tx := domain.NewTransaction(req.UserID, date, req.Amount, txType, req.Merchant, category, req.Description)
	if err := h.txns.Insert(r.Context(), tx); err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, tx)
}

// UploadCSV handles POST /api/transactions/upload-csv/{user_id}
func (h *TransactionsHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/transactions/upload-csv/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "A CSV file is required")
		return
	}
	defer file.Close()

	count, err := h.importer.ImportCSV(r.Context(), userID, file)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("CSV import failed")
		middleware.WriteError(w, http.StatusBadRequest, "Error processing CSV: "+err.Error())
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":            "Transactions imported successfully",
		"transactions_added": count,
	})
}

// MockSync handles POST /api/transactions/mock-sync/{user_id}
func (h *TransactionsHandler) MockSync(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/transactions/mock-sync/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	result, err := h.samples.Generate(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Mock sync failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to sync transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Bank sync completed",
		"synced":  result,
	})
}

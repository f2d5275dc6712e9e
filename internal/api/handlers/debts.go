package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/api/middleware"
	"github.com/dvloznov/financewise/internal/debtsim"
	"github.com/dvloznov/financewise/internal/domain"
	"github.com/dvloznov/financewise/internal/store"
)

// DebtsHandler handles debt CRUD and payoff analysis.
type DebtsHandler struct {
	debts *store.DebtRepository
	log   zerolog.Logger
}

// NewDebtsHandler creates a new debts handler.
func NewDebtsHandler(debts *store.DebtRepository, log zerolog.Logger) *DebtsHandler {
	return &DebtsHandler{debts: debts, log: log}
}

// List handles GET /api/debts/{user_id}
func (h *DebtsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/debts/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	debts, err := h.debts.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list debts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list debts")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, debts)
}

// Create handles POST /api/debts
func (h *DebtsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID          string  `json:"user_id"`
		Name            string  `json:"name"`
		Type            string  `json:"type"`
		Principal       float64 `json:"principal"`
		Outstanding     float64 `json:"outstanding"`
		InterestRate    float64 `json:"interest_rate"`
		EMIAmount       float64 `json:"emi_amount"`
		RemainingTenure int     `json:"remaining_tenure"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id and name are required")
		return
	}
	if req.Outstanding < 0 || req.EMIAmount < 0 || req.InterestRate < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amounts must be non-negative")
		return
	}

	debtType := domain.DebtType(req.Type)
	if !debtType.IsValid() {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown debt type")
		return
	}

	debt := domain.NewDebt(req.UserID, req.Name, debtType, req.Principal, req.Outstanding, req.InterestRate, req.EMIAmount, req.RemainingTenure)
	if err := h.debts.Insert(r.Context(), debt); err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to create debt")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create debt")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, debt)
}

// Delete handles DELETE /api/debts/{debt_id}
func (h *DebtsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	debtID := strings.TrimPrefix(r.URL.Path, "/api/debts/")
	if debtID == "" || strings.Contains(debtID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid debt id")
		return
	}

	err := h.debts.Delete(r.Context(), debtID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Debt not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("debt_id", debtID).Msg("Failed to delete debt")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete debt")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Debt deleted successfully"})
}

// Analyze handles GET /api/debts/analysis/{user_id}?extra_payment=
func (h *DebtsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/debts/analysis/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	extraPayment := 0.0
	if raw := r.URL.Query().Get("extra_payment"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid extra_payment")
			return
		}
		extraPayment = parsed
	}

	debts, err := h.debts.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load debts for analysis")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to analyze debts")
		return
	}

	analysis := debtsim.Analyze(debts, extraPayment, time.Now().UTC())
	middleware.WriteJSON(w, http.StatusOK, analysis)
}

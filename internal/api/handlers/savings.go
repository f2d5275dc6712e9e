package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/advisor"
	"github.com/dvloznov/financewise/internal/analytics"
	"github.com/dvloznov/financewise/internal/api/middleware"
	"github.com/dvloznov/financewise/internal/domain"
	"github.com/dvloznov/financewise/internal/store"
)

// SavingsHandler handles savings goal CRUD and savings-rate suggestions.
type SavingsHandler struct {
	goals     *store.SavingsGoalRepository
	analytics *analytics.Aggregator
	log       zerolog.Logger
}

// NewSavingsHandler creates a new savings handler.
func NewSavingsHandler(goals *store.SavingsGoalRepository, aggregator *analytics.Aggregator, log zerolog.Logger) *SavingsHandler {
	return &SavingsHandler{goals: goals, analytics: aggregator, log: log}
}

// List handles GET /api/savings/{user_id}
func (h *SavingsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/savings/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	goals, err := h.goals.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list savings goals")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list savings goals")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, goals)
}

// Create handles POST /api/savings
func (h *SavingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID              string     `json:"user_id"`
		Name                string     `json:"name"`
		TargetAmount        float64    `json:"target_amount"`
		MonthlyContribution float64    `json:"monthly_contribution"`
		TargetDate          *time.Time `json:"target_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id and name are required")
		return
	}
	if req.TargetAmount < 0 || req.MonthlyContribution < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amounts must be non-negative")
		return
	}

	goal := domain.NewSavingsGoal(req.UserID, req.Name, req.TargetAmount, req.MonthlyContribution, req.TargetDate)
	if err := h.goals.Insert(r.Context(), goal); err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to create savings goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create savings goal")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, goal)
}

// Contribute handles POST /api/savings/contribute
func (h *SavingsHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GoalID string  `json:"goal_id"`
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GoalID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "goal_id is required")
		return
	}
	if req.Amount < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amount must be non-negative")
		return
	}

	goal, err := h.goals.FindByID(r.Context(), req.GoalID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("goal_id", req.GoalID).Msg("Failed to load savings goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to add contribution")
		return
	}

	newTotal := goal.CurrentAmount + req.Amount
	if err := h.goals.SetCurrentAmount(r.Context(), req.GoalID, newTotal); err != nil {
		h.log.Error().Err(err).Str("goal_id", req.GoalID).Msg("Failed to update savings goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to add contribution")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Contribution added",
		"new_total": newTotal,
	})
}

// Delete handles DELETE /api/savings/{goal_id}
func (h *SavingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID := strings.TrimPrefix(r.URL.Path, "/api/savings/")
	if goalID == "" || strings.Contains(goalID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid goal id")
		return
	}

	err := h.goals.Delete(r.Context(), goalID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("goal_id", goalID).Msg("Failed to delete savings goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete savings goal")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}

// Suggestions handles GET /api/savings/suggestions/{user_id}
func (h *SavingsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/savings/suggestions/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	summary, err := h.analytics.Summary(r.Context(), userID, time.Now().UTC())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to build savings suggestions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to build savings suggestions")
		return
	}

	tiers := advisor.SavingsTiers(summary.RemainingBalance, summary.ThisMonthSpending)
	middleware.WriteJSON(w, http.StatusOK, tiers)
}

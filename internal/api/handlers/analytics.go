package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/advisor"
	"github.com/dvloznov/financewise/internal/analytics"
	"github.com/dvloznov/financewise/internal/api/middleware"
)

// AnalyticsHandler handles spending summaries, AI insights and
// expense-reduction suggestions.
type AnalyticsHandler struct {
	analytics *analytics.Aggregator
	advisor   *advisor.Advisor
	log       zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(aggregator *analytics.Aggregator, adv *advisor.Advisor, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: aggregator, advisor: adv, log: log}
}

// Summary handles GET /api/analytics/summary/{user_id}
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/analytics/summary/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	summary, err := h.analytics.Summary(r.Context(), userID, time.Now().UTC())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to build analytics summary")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to build analytics summary")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, summary)
}

// Insights handles GET /api/analytics/insights/{user_id}
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/analytics/insights/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	insights, err := h.advisor.RefreshInsights(r.Context(), userID, time.Now().UTC())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to refresh insights")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to generate insights")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, insights)
}

// ExpenseReduction handles GET /api/analytics/expense-reduction/{user_id}
func (h *AnalyticsHandler) ExpenseReduction(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/analytics/expense-reduction/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	suggestions, err := h.advisor.ExpenseReduction(r.Context(), userID, time.Now().UTC())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to build expense-reduction suggestions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to build suggestions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, suggestions)
}

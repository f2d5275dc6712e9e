package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/api/middleware"
	"github.com/dvloznov/financewise/internal/dashboard"
)

// DashboardHandler serves the consolidated dashboard view.
type DashboardHandler struct {
	composer *dashboard.Composer
	log      zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(composer *dashboard.Composer, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{composer: composer, log: log}
}

// Get handles GET /api/dashboard/{user_id}
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/dashboard/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	view, err := h.composer.Compose(r.Context(), userID, time.Now().UTC())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to compose dashboard")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, view)
}

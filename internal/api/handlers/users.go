package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/api/middleware"
	"github.com/dvloznov/financewise/internal/store"
)

// UsersHandler handles profile updates.
type UsersHandler struct {
	users *store.UserRepository
	log   zerolog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(users *store.UserRepository, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log}
}

// Update handles PUT /api/users/{user_id}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if userID == "" || strings.Contains(userID, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		MonthlyIncome *float64 `json:"monthly_income"`
		FixedExpenses *float64 `json:"fixed_expenses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.MonthlyIncome, req.FixedExpenses)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to update user")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

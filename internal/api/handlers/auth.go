// Package handlers implements the HTTP endpoints of the FinanceWise API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/api/middleware"
	"github.com/dvloznov/financewise/internal/auth"
	"github.com/dvloznov/financewise/internal/store"
)

// AuthHandler handles the OTP login endpoints.
type AuthHandler struct {
	svc *auth.Service
	log zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *auth.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// SendOTP handles POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Phone is required")
		return
	}

	code, err := h.svc.SendOTP(r.Context(), req.Phone)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to send OTP")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	// demo_otp is returned only because delivery is mocked.
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"message":  "OTP sent successfully",
		"demo_otp": code,
	})
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" || req.OTP == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Phone and OTP are required")
		return
	}

	user, err := h.svc.VerifyOTP(r.Context(), req.Phone, req.OTP)
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, auth.ErrInvalidOTP):
		middleware.WriteError(w, http.StatusBadRequest, "Invalid OTP")
		return
	case errors.Is(err, auth.ErrExpiredOTP):
		middleware.WriteError(w, http.StatusBadRequest, "OTP expired")
		return
	case err != nil:
		h.log.Error().Err(err).Msg("Failed to verify OTP")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to verify OTP")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
	})
}

package handlers

import (
	"net/http"

	"github.com/sidelines/sidelines/internal/apperr"
	"github.com/sidelines/sidelines/internal/auth"
	"github.com/sidelines/sidelines/internal/metrics"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Service *auth.Service
	Errors  Errors
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input auth.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}

	id, err := h.Service.Register(r.Context(), input)
	metrics.IncAuthAttempt("signup", outcome(err))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user_id": id,
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	res, err := h.Service.Login(r.Context(), input.Email, input.Password)
	metrics.IncAuthAttempt("login", outcome(err))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.KindOf(err).String()
}

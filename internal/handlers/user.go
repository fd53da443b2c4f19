package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sidelines/sidelines/internal/middleware"
	"github.com/sidelines/sidelines/internal/repo"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo      *repo.UserRepo
	AuditRepo *repo.AuditRepo
	Errors    Errors
}

// ==========================
// Grant Admin
// ==========================

// GrantAdmin elevates a user. Routed behind RequireAdmin.
func (h *UserHandler) GrantAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user id")
	if !ok {
		return
	}

	if err := h.Repo.SetAdmin(r.Context(), id, true); err != nil {
		h.Errors.Write(w, r, notFoundOr(err, "User not found", "failed to update user"))
		return
	}

	if h.AuditRepo != nil {
		if actorID, ok := middleware.GetUserID(r.Context()); ok {
			if err := h.AuditRepo.Log(r.Context(), actorID, "grant_admin", "user", id); err != nil {
				slog.Warn("audit log write failed", "action", "grant_admin", "user_id", id, "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User promoted to admin",
		"user_id": id,
	})
}

// ==========================
// Current User
// ==========================
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	user, err := h.Repo.GetByID(r.Context(), userID)
	if err != nil {
		h.Errors.Write(w, r, notFoundOr(err, "User not found", "failed to load user"))
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

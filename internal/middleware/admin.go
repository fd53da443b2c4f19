package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sidelines/sidelines/internal/models"
	"github.com/sidelines/sidelines/internal/repo"
)

// UserLookup loads the current state of a user.
type UserLookup interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// RequireAdmin allows the request only when the authenticated user is an
// admin. The flag is read from the store on every request so a revoked
// admin loses access before their token expires. Must run after Authenticate.
func RequireAdmin(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, msgNoToken)
				return
			}
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					writeMessage(w, http.StatusUnauthorized, msgInvalidToken)
					return
				}
				slog.Error("admin check failed", "user_id", userID, "error", err)
				writeMessage(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !user.IsAdmin {
				writeMessage(w, http.StatusForbidden, "Forbidden: admin only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

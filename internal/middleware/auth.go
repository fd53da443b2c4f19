package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sidelines/sidelines/internal/auth"
)

type key string

const identityKey key = "identity"

const (
	msgNoToken      = "Unauthorized: No token provided"
	msgInvalidToken = "Unauthorized: Invalid token"
	msgMissingID    = "Unauthorized: Invalid token (missing user_id)"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID int
}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the identity the guard attached, if any.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// GetUserID returns the authenticated user id, if any.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := GetIdentity(ctx)
	return id.UserID, ok
}

// Authenticate rejects requests without a valid bearer token with 401 and
// attaches the caller's Identity otherwise. It does not check what the caller
// may do with the resource; handlers compare ownership themselves.
func Authenticate(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				slog.Warn("token rejected",
					"request_id", chimw.GetReqID(r.Context()),
					"path", r.URL.Path,
					"reason", reason(err),
					"error", err)
				msg := msgInvalidToken
				if errors.Is(err, auth.ErrTokenClaims) {
					msg = msgMissingID
				}
				writeMessage(w, http.StatusUnauthorized, msg)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func reason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenSignature):
		return "signature"
	case errors.Is(err, auth.ErrTokenClaims):
		return "claims"
	default:
		return "malformed"
	}
}

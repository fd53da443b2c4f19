package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sidelines/sidelines/internal/middleware"
)

var userRowColumns = []string{"user_id", "username", "email", "password_hash", "profile_picture", "age", "is_admin", "created_at"}

const userByIDQuery = `SELECT user_id, username, email, password_hash, profile_picture, age, is_admin, created_at FROM users WHERE user_id = \$1`
const userByEmailQuery = `SELECT user_id, username, email, password_hash, profile_picture, age, is_admin, created_at FROM users WHERE email = \$1`

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// asUser attaches an authenticated identity the way the guard does.
func asUser(r *http.Request, userID int) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), middleware.Identity{UserID: userID}))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

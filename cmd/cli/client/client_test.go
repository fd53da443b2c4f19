package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"post_id":3}`))
	}))
	defer srv.Close()
	t.Setenv("SIDELINES_API_URL", srv.URL)

	var out struct {
		PostID int `json:"post_id"`
	}
	err := Do(context.Background(), http.MethodPost, "/api/posts", "tok", map[string]string{"title": "x"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.PostID)
}

func TestDo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Unauthorized to delete this post"}`))
	}))
	defer srv.Close()
	t.Setenv("SIDELINES_API_URL", srv.URL)

	err := Do(context.Background(), http.MethodDelete, "/api/posts/1", "tok", nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Unauthorized to delete this post", apiErr.Message)
}

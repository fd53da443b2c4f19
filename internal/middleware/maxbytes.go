package middleware

import (
	"net/http"
)

const (
	// DefaultMaxBodyBytes caps JSON request bodies (1 MiB).
	DefaultMaxBodyBytes = 1 << 20
	// UploadMaxBodyBytes caps multipart uploads (5 MiB).
	UploadMaxBodyBytes = 5 << 20
)

// MaxBytes limits the request body size. Reads past the limit fail and the
// handler answers 413.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

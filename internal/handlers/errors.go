package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sidelines/sidelines/internal/apperr"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "message" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"message": message})
}

// JSONValidationError sends "message" plus optional per-field details.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	out := map[string]any{"message": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	writeJSON(w, status, out)
}

// Errors renders failures from the service and store layers. With Debug set
// the underlying cause is returned under "error"; otherwise it is only logged.
type Errors struct {
	Debug bool
}

// Write maps err to its status and body. Errors that are not *apperr.Error
// become 500 with a generic message.
func (e Errors) Write(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := kind.Status()

	message := ErrMessageInternal
	var fields map[string]string
	var ae *apperr.Error
	if errors.As(err, &ae) {
		message = ae.Message
		fields = ae.Fields
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"kind", kind.String(),
			"error", err)
	}

	out := map[string]any{"message": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	if e.Debug {
		if cause := errors.Unwrap(err); cause != nil || ae == nil {
			out["error"] = err.Error()
		}
	}
	writeJSON(w, status, out)
}

package handlers

import (
	"net/http"

	"github.com/sidelines/sidelines/internal/apperr"
	"github.com/sidelines/sidelines/internal/repo"
)

// AuditHandler serves audit log endpoints.
type AuditHandler struct {
	Repo   *repo.AuditRepo
	Errors Errors
}

// ListAudit returns recent audit log entries. Query: limit (default 50, max 200), offset (default 0).
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 50, 200)

	entries, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		h.Errors.Write(w, r, apperr.Store("failed to load audit log", err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

package handlers

import (
	"net/http"

	"github.com/sidelines/sidelines/internal/apperr"
	"github.com/sidelines/sidelines/internal/repo"
)

// TransferHandler serves the transfer search.
type TransferHandler struct {
	Repo   *repo.TransferRepo
	Errors Errors
}

// Filter returns transfers matching the query parameters (league, team,
// ageFrom, ageTo, feeFrom, feeTo, limit, offset). Malformed numbers are a 400.
func (h *TransferHandler) Filter(w http.ResponseWriter, r *http.Request) {
	filter, err := repo.ParseTransferFilter(r.URL.Query())
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	transfers, err := h.Repo.Filter(r.Context(), filter)
	if err != nil {
		h.Errors.Write(w, r, apperr.Store("Database error", err))
		return
	}
	writeJSON(w, http.StatusOK, transfers)
}

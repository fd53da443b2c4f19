package handlers

import (
	"net/http"

	"github.com/sidelines/sidelines/internal/apperr"
	"github.com/sidelines/sidelines/internal/repo"
)

// ReferenceHandler serves the league and team tables.
type ReferenceHandler struct {
	Repo   *repo.LeagueRepo
	Errors Errors
}

func (h *ReferenceHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.Repo.ListLeagues(r.Context())
	if err != nil {
		h.Errors.Write(w, r, apperr.Store("Failed to fetch leagues", err))
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (h *ReferenceHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathID(w, r, "leagueId", "league id")
	if !ok {
		return
	}
	teams, err := h.Repo.ListTeams(r.Context(), leagueID)
	if err != nil {
		h.Errors.Write(w, r, apperr.Store("Failed to fetch teams", err))
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *ReferenceHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamId", "team id")
	if !ok {
		return
	}
	team, err := h.Repo.GetTeam(r.Context(), teamID)
	if err != nil {
		h.Errors.Write(w, r, notFoundOr(err, "Team not found", "Failed to fetch team details"))
		return
	}
	writeJSON(w, http.StatusOK, team)
}

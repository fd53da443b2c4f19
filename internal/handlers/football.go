package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/sidelines/sidelines/internal/apperr"
	"github.com/sidelines/sidelines/internal/football"
)

// FootballSource is the provider client the handler proxies to.
type FootballSource interface {
	Standings(ctx context.Context, league string) (json.RawMessage, error)
	Fixtures(ctx context.Context, league string) (json.RawMessage, error)
	Rumors(ctx context.Context) (json.RawMessage, error)
	LiveMatches(ctx context.Context) ([]json.RawMessage, error)
	MatchDetails(ctx context.Context, fixtureID int) (map[string]json.RawMessage, error)
}

// competition codes look like PL, BL1, CL; football-data also accepts numeric ids.
var leagueCode = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// ==========================
// FootballHandler
// ==========================
type FootballHandler struct {
	Source FootballSource
	Errors Errors
}

func (h *FootballHandler) Standings(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}
	table, err := h.Source.Standings(r.Context(), league)
	h.respond(w, r, table, err, "Failed to fetch standings")
}

func (h *FootballHandler) Fixtures(w http.ResponseWriter, r *http.Request) {
	league, ok := leagueParam(w, r)
	if !ok {
		return
	}
	fixtures, err := h.Source.Fixtures(r.Context(), league)
	h.respond(w, r, fixtures, err, "Failed to fetch fixtures")
}

func (h *FootballHandler) Rumors(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Source.Rumors(r.Context())
	h.respond(w, r, articles, err, "Failed to fetch news")
}

func (h *FootballHandler) LiveMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.Source.LiveMatches(r.Context())
	h.respond(w, r, matches, err, "Failed to fetch live matches")
}

func (h *FootballHandler) MatchDetails(w http.ResponseWriter, r *http.Request) {
	fixtureID, ok := pathID(w, r, "fixtureId", "fixture id")
	if !ok {
		return
	}
	details, err := h.Source.MatchDetails(r.Context(), fixtureID)
	if errors.Is(err, football.ErrNotFound) {
		h.Errors.Write(w, r, apperr.NotFound("Match details not found"))
		return
	}
	h.respond(w, r, details, err, "Failed to fetch match details")
}

func (h *FootballHandler) respond(w http.ResponseWriter, r *http.Request, body any, err error, failed string) {
	if err != nil {
		h.Errors.Write(w, r, apperr.Upstream(failed, err))
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func leagueParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	league := chi.URLParam(r, "leagueId")
	if !leagueCode.MatchString(league) {
		JSONError(w, "invalid league id", http.StatusBadRequest)
		return "", false
	}
	return league, true
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sidelines/sidelines/internal/football"
)

type fakeFootball struct {
	err      error
	lastArgs []any
}

func (f *fakeFootball) Standings(_ context.Context, league string) (json.RawMessage, error) {
	f.lastArgs = []any{league}
	return json.RawMessage(`[{"position":1}]`), f.err
}

func (f *fakeFootball) Fixtures(_ context.Context, league string) (json.RawMessage, error) {
	f.lastArgs = []any{league}
	return json.RawMessage(`{"matches":[]}`), f.err
}

func (f *fakeFootball) Rumors(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[]`), f.err
}

func (f *fakeFootball) LiveMatches(context.Context) ([]json.RawMessage, error) {
	return []json.RawMessage{}, f.err
}

func (f *fakeFootball) MatchDetails(_ context.Context, id int) (map[string]json.RawMessage, error) {
	f.lastArgs = []any{id}
	if id == 404 {
		return nil, football.ErrNotFound
	}
	return map[string]json.RawMessage{"fixture": json.RawMessage(`{"id":1}`)}, f.err
}

func TestFootballHandler_Standings(t *testing.T) {
	src := &fakeFootball{}
	h := &FootballHandler{Source: src}
	rr := httptest.NewRecorder()
	h.Standings(rr, requestWithChiURLParams("GET", "/api/standings/PL", nil, map[string]string{"leagueId": "PL"}))

	if rr.Code != http.StatusOK {
		t.Errorf("Standings status: got %d, want 200", rr.Code)
	}
	if src.lastArgs[0] != "PL" {
		t.Errorf("league passed: %v", src.lastArgs)
	}
}

func TestFootballHandler_InvalidLeague(t *testing.T) {
	h := &FootballHandler{Source: &fakeFootball{}}
	rr := httptest.NewRecorder()
	h.Fixtures(rr, requestWithChiURLParams("GET", "/api/fixtures/x", nil, map[string]string{"leagueId": "../admin"}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Fixtures status: got %d, want 400", rr.Code)
	}
}

func TestFootballHandler_UpstreamFailure(t *testing.T) {
	h := &FootballHandler{Source: &fakeFootball{err: &football.UpstreamError{Provider: "newsapi", Status: 500}}}
	rr := httptest.NewRecorder()
	h.Rumors(rr, httptest.NewRequest("GET", "/api/rumors", nil))

	if rr.Code != http.StatusBadGateway {
		t.Errorf("Rumors status: got %d, want 502", rr.Code)
	}
	if out := decodeBody(t, rr); out["message"] != "Failed to fetch news" {
		t.Errorf("message: %v", out["message"])
	}
}

func TestFootballHandler_MatchDetails(t *testing.T) {
	h := &FootballHandler{Source: &fakeFootball{}}

	rr := httptest.NewRecorder()
	h.MatchDetails(rr, requestWithChiURLParams("GET", "/api/match-details/1", nil, map[string]string{"fixtureId": "1"}))
	if rr.Code != http.StatusOK {
		t.Errorf("MatchDetails status: got %d, want 200", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.MatchDetails(rr, requestWithChiURLParams("GET", "/api/match-details/404", nil, map[string]string{"fixtureId": "404"}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown fixture: got %d, want 404", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.MatchDetails(rr, requestWithChiURLParams("GET", "/api/match-details/abc", nil, map[string]string{"fixtureId": "abc"}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad fixture id: got %d, want 400", rr.Code)
	}
}

// Package football fetches standings, fixtures, live scores and transfer
// news from third-party providers and caches the slow-moving ones.
package football

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sidelines/sidelines/internal/cache"
	"github.com/sidelines/sidelines/internal/clock"
	"github.com/sidelines/sidelines/internal/metrics"
)

const (
	providerFootballData = "football-data"
	providerAPISports    = "api-sports"
	providerNews         = "newsapi"

	// FixtureWindow is how far ahead Fixtures looks.
	FixtureWindow = 14 * 24 * time.Hour

	rumorsQuery = "football transfers OR soccer transfers"

	maxResponseBytes = 8 << 20
)

// ErrNotFound is returned when a provider has no record for the requested id.
var ErrNotFound = errors.New("football: not found")

// UpstreamError is a transport failure or non-2xx answer from a provider.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Config holds provider endpoints and credentials.
type Config struct {
	FootballDataURL string
	FootballDataKey string
	LiveScoresURL   string
	LiveScoresKey   string
	LiveScoresHost  string
	NewsURL         string
	NewsKey         string
}

// Client talks to the providers. Responses are passed through as raw JSON.
type Client struct {
	cfg   Config
	http  *http.Client
	cache cache.Store
	clock clock.Clock
}

// NewClient returns a client. store may be nil to disable caching; hc may be
// nil for a client with a 10s timeout.
func NewClient(cfg Config, store cache.Store, hc *http.Client, clk clock.Clock) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if store == nil {
		store = (*cache.Redis)(nil)
	}
	return &Client{cfg: cfg, http: hc, cache: store, clock: clk}
}

// ==========================
// football-data.org
// ==========================

// Standings returns the first standings table of a competition (e.g. "PL"),
// or an empty array when the competition has none.
func (c *Client) Standings(ctx context.Context, league string) (json.RawMessage, error) {
	key := "standings:" + league
	var cached json.RawMessage
	if c.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	table, err := c.fetchStandings(ctx, league)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, key, table)
	return table, nil
}

// RefreshStandings fetches standings bypassing the cache and stores the result.
func (c *Client) RefreshStandings(ctx context.Context, league string) error {
	table, err := c.fetchStandings(ctx, league)
	if err != nil {
		return err
	}
	c.cache.Set(ctx, "standings:"+league, table)
	return nil
}

func (c *Client) fetchStandings(ctx context.Context, league string) (json.RawMessage, error) {
	u := c.cfg.FootballDataURL + "/competitions/" + url.PathEscape(league) + "/standings"
	var body struct {
		Standings []struct {
			Table json.RawMessage `json:"table"`
		} `json:"standings"`
	}
	if err := c.get(ctx, providerFootballData, u, c.footballHeaders(), &body); err != nil {
		return nil, err
	}
	if len(body.Standings) == 0 || len(body.Standings[0].Table) == 0 || string(body.Standings[0].Table) == "null" {
		return json.RawMessage("[]"), nil
	}
	return body.Standings[0].Table, nil
}

// Fixtures returns a competition's matches from today through FixtureWindow.
func (c *Client) Fixtures(ctx context.Context, league string) (json.RawMessage, error) {
	from, to := DateRange(c.clock.Now())
	key := "fixtures:" + league + ":" + from

	var cached json.RawMessage
	if c.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	q := url.Values{"dateFrom": {from}, "dateTo": {to}}
	u := c.cfg.FootballDataURL + "/competitions/" + url.PathEscape(league) + "/matches?" + q.Encode()
	var body json.RawMessage
	if err := c.get(ctx, providerFootballData, u, c.footballHeaders(), &body); err != nil {
		return nil, err
	}
	c.cache.Set(ctx, key, body)
	return body, nil
}

// DateRange formats [now, now+FixtureWindow] as UTC YYYY-MM-DD dates.
func DateRange(now time.Time) (from, to string) {
	now = now.UTC()
	return now.Format(time.DateOnly), now.Add(FixtureWindow).Format(time.DateOnly)
}

func (c *Client) footballHeaders() http.Header {
	return http.Header{"X-Auth-Token": {c.cfg.FootballDataKey}}
}

// ==========================
// NewsAPI
// ==========================

// Rumors returns the latest English transfer news articles.
func (c *Client) Rumors(ctx context.Context) (json.RawMessage, error) {
	const key = "rumors"
	var cached json.RawMessage
	if c.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	q := url.Values{
		"q":        {rumorsQuery},
		"apiKey":   {c.cfg.NewsKey},
		"pageSize": {"50"},
		"language": {"en"},
		"sortBy":   {"publishedAt"},
	}
	var body struct {
		Articles json.RawMessage `json:"articles"`
	}
	if err := c.get(ctx, providerNews, c.cfg.NewsURL+"?"+q.Encode(), nil, &body); err != nil {
		return nil, err
	}
	articles := orEmpty(body.Articles)
	c.cache.Set(ctx, key, articles)
	return articles, nil
}

// ==========================
// api-sports (live scores)
// ==========================

type apiSportsResponse struct {
	Response []json.RawMessage `json:"response"`
}

// LiveMatches returns all fixtures currently in play. Not cached.
func (c *Client) LiveMatches(ctx context.Context) ([]json.RawMessage, error) {
	var body apiSportsResponse
	if err := c.get(ctx, providerAPISports, c.cfg.LiveScoresURL+"/fixtures?live=all", c.liveHeaders(), &body); err != nil {
		return nil, err
	}
	if body.Response == nil {
		return []json.RawMessage{}, nil
	}
	return body.Response, nil
}

// MatchDetails returns a fixture with its "lineups" and "events" attached.
// The three lookups run concurrently; ErrNotFound means the fixture is unknown.
func (c *Client) MatchDetails(ctx context.Context, fixtureID int) (map[string]json.RawMessage, error) {
	id := strconv.Itoa(fixtureID)
	var fixture, lineups, events apiSportsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(gctx, providerAPISports, c.cfg.LiveScoresURL+"/fixtures?id="+id, c.liveHeaders(), &fixture)
	})
	g.Go(func() error {
		return c.get(gctx, providerAPISports, c.cfg.LiveScoresURL+"/fixtures/lineups?fixture="+id, c.liveHeaders(), &lineups)
	})
	g.Go(func() error {
		return c.get(gctx, providerAPISports, c.cfg.LiveScoresURL+"/fixtures/events?fixture="+id, c.liveHeaders(), &events)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(fixture.Response) == 0 {
		return nil, ErrNotFound
	}
	details := make(map[string]json.RawMessage)
	if err := json.Unmarshal(fixture.Response[0], &details); err != nil {
		return nil, &UpstreamError{Provider: providerAPISports, Status: http.StatusOK, Err: fmt.Errorf("decode fixture: %w", err)}
	}

	var err error
	if details["lineups"], err = marshalList(lineups.Response); err != nil {
		return nil, err
	}
	if details["events"], err = marshalList(events.Response); err != nil {
		return nil, err
	}
	return details, nil
}

func (c *Client) liveHeaders() http.Header {
	return http.Header{
		"X-Rapidapi-Key":  {c.cfg.LiveScoresKey},
		"X-Rapidapi-Host": {c.cfg.LiveScoresHost},
	}
}

func marshalList(items []json.RawMessage) (json.RawMessage, error) {
	if items == nil {
		items = []json.RawMessage{}
	}
	return json.Marshal(items)
}

func orEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("[]")
	}
	return raw
}

// get issues a GET and decodes a 2xx JSON body into dst.
func (c *Client) get(ctx context.Context, provider, rawURL string, header http.Header, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &UpstreamError{Provider: provider, Err: err}
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.IncUpstream(provider, "error")
		return &UpstreamError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()
	metrics.IncUpstream(provider, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{Provider: provider, Status: resp.StatusCode, Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		return &UpstreamError{Provider: provider, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

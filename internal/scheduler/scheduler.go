package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// StandingsRefresher re-fetches one league's standings into the cache.
type StandingsRefresher interface {
	RefreshStandings(ctx context.Context, league string) error
}

// Scheduler runs the standings warm-up on a cron expression.
type Scheduler struct {
	cron    *cron.Cron
	source  StandingsRefresher
	leagues []string
	timeout time.Duration
}

// New validates expr and registers the warm-up job. Call Start to run it.
func New(expr string, source StandingsRefresher, leagues []string) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		source:  source,
		leagues: leagues,
		timeout: 30 * time.Second,
	}
	if _, err := s.cron.AddFunc(expr, func() { s.RefreshAll(context.Background()) }); err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron expression %q: %w", expr, err)
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	slog.Info("standings warm-up scheduled", "leagues", s.leagues)
	s.cron.Start()
}

// Stop stops the cron loop and returns a context done when the running job finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RefreshAll refreshes every league in turn. A failing league is logged and
// does not stop the rest. It returns how many leagues succeeded.
func (s *Scheduler) RefreshAll(ctx context.Context) int {
	ok := 0
	for _, league := range s.leagues {
		lctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.source.RefreshStandings(lctx, league)
		cancel()
		if err != nil {
			slog.Warn("standings refresh failed", "league", league, "error", err)
			continue
		}
		ok++
	}
	slog.Debug("standings refreshed", "ok", ok, "total", len(s.leagues))
	return ok
}

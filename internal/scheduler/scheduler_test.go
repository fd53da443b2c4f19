package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeRefresher struct {
	mu      sync.Mutex
	calls   []string
	failing map[string]bool
}

func (f *fakeRefresher) RefreshStandings(_ context.Context, league string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, league)
	if f.failing[league] {
		return errors.New("upstream down")
	}
	return nil
}

func TestNew_InvalidExpression(t *testing.T) {
	if _, err := New("not a cron", &fakeRefresher{}, []string{"PL"}); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestRefreshAll_ContinuesPastFailures(t *testing.T) {
	src := &fakeRefresher{failing: map[string]bool{"BL1": true}}
	s, err := New("@every 1h", src, []string{"PL", "BL1", "SA"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := s.RefreshAll(context.Background()); got != 2 {
		t.Errorf("RefreshAll succeeded for %d leagues, want 2", got)
	}
	want := []string{"PL", "BL1", "SA"}
	if len(src.calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", src.calls, want)
	}
	for i := range want {
		if src.calls[i] != want[i] {
			t.Errorf("call %d: got %s, want %s", i, src.calls[i], want[i])
		}
	}
}

func TestStartStop(t *testing.T) {
	s, err := New("@every 1h", &fakeRefresher{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start()
	<-s.Stop().Done()
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestTimelineProjections(t *testing.T) {
	cases := []struct {
		status  int
		steps   []string
		current int
	}{
		{StatusAwaitingConfirmation, []string{StepPlaced, StepAwaiting}, 1},
		{StatusOpen, []string{StepPlaced, StepPreparing, StepServed}, 1},
		{StatusClosed, []string{StepPlaced, StepPreparing, StepServed}, AllStepsComplete},
		{StatusCancelled, []string{StepPlaced, StepCancelled}, 1},
		{42, []string{StepPlaced}, 0},
	}
	for _, tc := range cases {
		steps, current := Timeline(tc.status)
		if current != tc.current {
			t.Errorf("Timeline(%d) current = %d, want %d", tc.status, current, tc.current)
		}
		if len(steps) != len(tc.steps) {
			t.Errorf("Timeline(%d) steps = %v, want %v", tc.status, steps, tc.steps)
			continue
		}
		for i := range steps {
			if steps[i] != tc.steps[i] {
				t.Errorf("Timeline(%d) step[%d] = %q, want %q", tc.status, i, steps[i], tc.steps[i])
			}
		}
	}
}

func TestTimelineClosedMarksEveryStepCompleted(t *testing.T) {
	steps, current := Timeline(StatusClosed)
	for i := range steps {
		if i >= current {
			t.Errorf("step %d (%s) not completed: index >= current %d", i, steps[i], current)
		}
	}
}

func TestStageLabel(t *testing.T) {
	cases := map[int]string{
		0:  "placed",
		1:  "accepted",
		2:  "preparing",
		3:  "served",
		99: "served",
	}
	for status, want := range cases {
		if got := StageLabel(status); got != want {
			t.Errorf("StageLabel(%d) = %q, want %q", status, got, want)
		}
	}
}

// The two projections intentionally disagree; make sure nobody
// "fixes" one in terms of the other.
func TestProjectionsRemainIndependent(t *testing.T) {
	if StageLabel(StatusClosed) != "accepted" {
		t.Errorf("StageLabel(1) = %q; the second mapping treats 1 as accepted, not closed", StageLabel(StatusClosed))
	}
	if StageLabel(StatusCancelled) != "preparing" {
		t.Errorf("StageLabel(2) = %q; the second mapping treats 2 as preparing, not cancelled", StageLabel(StatusCancelled))
	}
}

func TestRemainingFormatAndClamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		est  time.Time
		want string
	}{
		{now.Add(5*time.Minute + 30*time.Second), "05:30"},
		{now.Add(59 * time.Second), "00:59"},
		{now, "00:00"},
		{now.Add(-10 * time.Minute), "00:00"},
	}
	for _, tc := range cases {
		if got := Remaining(tc.est, now); got != tc.want {
			t.Errorf("Remaining(%v) = %q, want %q", tc.est.Sub(now), got, tc.want)
		}
	}
}

// newTrackingServer serves /Order/by-reference, counting fetches and
// stamping the given estimated completion time on every response.
func newTrackingServer(t *testing.T, status int, est *time.Time) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/Order/by-reference", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		rec := OrderRecord{
			ID:                      "ord-1",
			Reference:               r.Header.Get("reference"),
			Status:                  status,
			EstimatedCompletionTime: est,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"isSuccessful": true, "data": rec})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestPollerFetchesImmediatelyThenOnTicksUntilCutoff(t *testing.T) {
	// Scaled down: interval 50ms, completion 75ms out. Expect the
	// immediate fetch plus the 50ms tick, then the 100ms tick lands
	// past the estimate and the loop exits.
	est := time.Now().Add(75 * time.Millisecond)
	srv, hits := newTrackingServer(t, StatusOpen, &est)

	var updates atomic.Int64
	p := NewPoller(New(srv.URL, "biz-1", ""), "REF-42", func(*OrderRecord) { updates.Add(1) }, zerolog.Nop())
	p.interval = 50 * time.Millisecond

	p.Start(context.Background())
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after the estimated completion time")
	}

	if got := hits.Load(); got != 2 {
		t.Errorf("fetches = %d, want exactly 2 (immediate + one tick)", got)
	}
	if got := updates.Load(); got != 2 {
		t.Errorf("onUpdate calls = %d, want 2", got)
	}
	if rec := p.Latest(); rec == nil || rec.Reference != "REF-42" {
		t.Errorf("latest = %+v, want the fetched record", rec)
	}
}

func TestPollerWithoutEstimateKeepsPollingUntilStopped(t *testing.T) {
	srv, hits := newTrackingServer(t, StatusOpen, nil)

	p := NewPoller(New(srv.URL, "biz-1", ""), "REF-42", nil, zerolog.Nop())
	p.interval = 20 * time.Millisecond

	p.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	p.Stop()

	got := hits.Load()
	if got < 3 {
		t.Errorf("fetches = %d, want at least 3 while no estimate is set", got)
	}
	time.Sleep(60 * time.Millisecond)
	if after := hits.Load(); after != got {
		t.Errorf("fetches grew from %d to %d after Stop", got, after)
	}
}

func TestPollerSwallowsFailedPolls(t *testing.T) {
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/Order/by-reference", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := NewPoller(New(srv.URL, "biz-1", ""), "REF-42", nil, zerolog.Nop())
	p.interval = 20 * time.Millisecond

	p.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	p.Stop()

	if got := hits.Load(); got < 2 {
		t.Errorf("fetches = %d, want polling to continue past failures", got)
	}
	if p.Latest() != nil {
		t.Errorf("latest = %+v, want nil after nothing but failures", p.Latest())
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	srv, _ := newTrackingServer(t, StatusOpen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(New(srv.URL, "biz-1", ""), "REF-42", nil, zerolog.Nop())
	p.interval = 20 * time.Millisecond

	p.Start(ctx)
	cancel()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not exit on context cancellation")
	}
}

func TestCountdownEmitsClampedTicks(t *testing.T) {
	var mu sync.Mutex
	var ticks []string
	c := StartCountdown(time.Now().Add(-time.Minute), func(s string) {
		mu.Lock()
		ticks = append(ticks, s)
		mu.Unlock()
	})
	time.Sleep(1100 * time.Millisecond)
	c.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(ticks) < 2 {
		t.Fatalf("got %d ticks, want at least the immediate one plus a 1s tick", len(ticks))
	}
	for i, s := range ticks {
		if s != "00:00" {
			t.Errorf("tick %d = %q, want clamped 00:00", i, s)
		}
	}
}

func TestCountdownStopIsIdempotent(t *testing.T) {
	c := StartCountdown(time.Now().Add(time.Minute), func(string) {})
	c.Stop()
	c.Stop()
}

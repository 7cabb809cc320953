package live

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
	"github.com/preston-bernstein/esports-hub-service/internal/store"
	"github.com/preston-bernstein/esports-hub-service/internal/teststubs"
)

type recordingPublisher struct {
	mu    sync.Mutex
	snaps []store.LiveSnapshot
}

func (r *recordingPublisher) Publish(snap store.LiveSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func liveResponse(ids ...string) lolapi.LiveResponse {
	var resp lolapi.LiveResponse
	for _, id := range ids {
		resp.Data.Schedule.Events = append(resp.Data.Schedule.Events, lolapi.Event{
			ID:        id,
			StartTime: "2025-02-26T09:00:00Z",
			State:     "inProgress",
			Type:      "match",
			League:    lolapi.LeagueRef{ID: "lck-id", Slug: "lck", Name: "LCK"},
			Match: &lolapi.Match{
				ID:    id,
				Teams: []lolapi.MatchTeam{{Code: "T1"}, {Code: "GEN"}},
			},
		})
	}
	return resp
}

var fixedNow = time.Date(2025, 2, 26, 10, 0, 0, 0, time.UTC)

func TestPollerFetchesStoresAndPublishes(t *testing.T) {
	source := &teststubs.StubSource{
		LiveResp: liveResponse("poll-match"),
		Notify:   make(chan struct{}),
	}
	st := store.NewMemoryStore()
	pub := &recordingPublisher{}

	p := NewPoller(source, st, pub, nil, nil, nil, 10*time.Millisecond)
	p.now = func() time.Time { return fixedNow }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-source.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	time.Sleep(30 * time.Millisecond) // allow at least one ticker fire

	cancel()
	_ = p.Stop(context.Background())

	snap, ok := st.Live()
	if !ok {
		t.Fatalf("expected live snapshot stored")
	}
	if len(snap.Matches) != 1 || snap.Matches[0].ID != "poll-match" || !snap.Matches[0].IsLive {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if !snap.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("expected snapshot stamped with poll time, got %v", snap.UpdatedAt)
	}
	if pub.count() < 1 {
		t.Fatalf("expected at least one publish")
	}
	if source.Calls.Load() < 1 {
		t.Fatalf("expected at least one fetch call")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	source := &teststubs.StubSource{Notify: make(chan struct{})}

	p := NewPoller(source, store.NewMemoryStore(), nil, nil, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-source.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond) // let an in-flight tick finish

	callsAfterStop := source.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if source.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional fetches after stop; before=%d after=%d", callsAfterStop, source.Calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := NewPoller(&teststubs.StubSource{}, nil, nil, nil, nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := NewPoller(&teststubs.StubSource{}, nil, nil, nil, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := NewPoller(&teststubs.StubSource{}, nil, nil, nil, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
	if p.palette == nil {
		t.Fatalf("expected default palette")
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := NewPoller(&teststubs.StubSource{}, nil, nil, nil, nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	source := &teststubs.StubSource{Err: errors.New("boom")}
	recorder := metrics.NewRecorder()

	p := NewPoller(source, store.NewMemoryStore(), nil, nil, nil, recorder, time.Millisecond)
	ctx := context.Background()

	p.fetchOnce(ctx)
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	source.Err = nil
	p.fetchOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 {
		t.Fatalf("expected failures reset, got %d", status.ConsecutiveFailures)
	}
	if status.LastSuccess.IsZero() {
		t.Fatalf("expected success timestamp")
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestStatusNotReadyAfterRepeatedFailures(t *testing.T) {
	s := Status{LastSuccess: fixedNow, ConsecutiveFailures: readyFailureThreshold}
	if s.IsReady() {
		t.Fatalf("expected not ready at failure threshold")
	}
	s.ConsecutiveFailures = readyFailureThreshold - 1
	if !s.IsReady() {
		t.Fatalf("expected ready below failure threshold")
	}
}

func TestPollerFailureKeepsPreviousSnapshot(t *testing.T) {
	source := &teststubs.StubSource{LiveResp: liveResponse("kept")}
	st := store.NewMemoryStore()
	pub := &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := NewPoller(source, st, pub, nil, logger, nil, time.Minute)
	p.fetchOnce(context.Background())

	source.Err = errors.New("fail")
	p.fetchOnce(context.Background())

	snap, ok := st.Live()
	if !ok || len(snap.Matches) != 1 || snap.Matches[0].ID != "kept" {
		t.Fatalf("expected previous snapshot kept, got %+v", snap)
	}
	if pub.count() != 1 {
		t.Fatalf("expected no publish on failure, got %d", pub.count())
	}
}

func TestPollerNilSinkDoesNotPanic(t *testing.T) {
	p := NewPoller(&teststubs.StubSource{LiveResp: liveResponse("m1")}, nil, nil, nil, nil, nil, time.Minute)
	p.fetchOnce(context.Background())
}

func BenchmarkPollerFetchOnce(b *testing.B) {
	source := &teststubs.StubSource{LiveResp: liveResponse("a", "b", "c")}
	p := NewPoller(source, store.NewMemoryStore(), nil, nil, nil, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.fetchOnce(ctx)
	}
}

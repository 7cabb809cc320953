package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/live"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.AddrVal = ":8080"
	if err := sh.ListenAndServe(); !errors.Is(err, sh.ListenErr) {
		t.Fatalf("expected configured listen error, got %v", err)
	}
	if err := sh.Shutdown(context.Background()); !errors.Is(err, sh.ShutdownErr) {
		t.Fatalf("expected configured shutdown error, got %v", err)
	}
	if sh.Addr() != ":8080" {
		t.Fatalf("expected addr passthrough, got %s", sh.Addr())
	}
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{})}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen failure")
	}
	_ = e.Shutdown(context.Background())
	if e.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for ErrHTTPServer")
	}

	c := &CloseableHTTPServer{}
	if err := c.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	_ = c.Shutdown(context.Background())
	if c.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}
}

func TestServerBaseDefaults(t *testing.T) {
	var base serverBase
	if base.Addr() != ":0" {
		t.Fatalf("expected default addr :0, got %s", base.Addr())
	}
	if base.Handler() == nil {
		t.Fatalf("expected default handler")
	}
	mux := http.NewServeMux()
	base = serverBase{AddrVal: ":9000", HandlerVal: mux}
	if base.Addr() != ":9000" || base.Handler() != mux {
		t.Fatalf("expected configured addr and handler")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestFixtureHelpers(t *testing.T) {
	start := time.Date(2025, 2, 26, 9, 0, 0, 0, time.UTC)
	ev := MatchEvent("m1", "unstarted", start, "T1", "GEN")
	if ev.Match == nil || len(ev.Match.Teams) != 2 || ev.League.Slug != SampleLeague.Slug {
		t.Fatalf("unexpected event fixture %+v", ev)
	}
	if ev.StartTime != "2025-02-26T09:00:00Z" {
		t.Fatalf("expected RFC3339 start, got %s", ev.StartTime)
	}
	if got := LiveResponse(ev).Data.Schedule.Events; len(got) != 1 {
		t.Fatalf("expected live payload with one event, got %d", len(got))
	}
	if got := ScheduleResponse(ev, ev).Data.Schedule.Events; len(got) != 2 {
		t.Fatalf("expected schedule payload with two events, got %d", len(got))
	}
}

func TestStubPollerStatus(t *testing.T) {
	p := &StubPoller{StatusVal: live.Status{ConsecutiveFailures: 2}}
	if p.Status().ConsecutiveFailures != 2 {
		t.Fatalf("expected status passthrough")
	}
}

func TestClockAdvance(t *testing.T) {
	start := time.Date(2025, 2, 26, 12, 0, 0, 0, time.UTC)
	c := NewClock(start)
	c.Advance(90 * time.Second)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Fatalf("expected advanced time, got %v", got)
	}
}

func TestAssertJSONError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"Failed to fetch live matches"}`))
	})
	rr := Serve(handler, http.MethodGet, "/api/live", nil)
	AssertJSONError(t, rr, http.StatusBadGateway, "Failed to fetch live matches")
}

func TestJSONBufferLogger(t *testing.T) {
	logger, buf := NewJSONBufferLogger()
	logger.Debug("response cache hit", "endpoint", "getLive")
	logger.Info("live poller started")

	entries := LogEntries(t, buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	entry, ok := FindLogEntry(entries, "response cache hit")
	if !ok || entry["endpoint"] != "getLive" {
		t.Fatalf("expected cache hit entry with endpoint, got %v", entry)
	}
	if _, ok := FindLogEntry(entries, "missing"); ok {
		t.Fatalf("expected no entry for unknown message")
	}
}

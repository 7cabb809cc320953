package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/app/hub"
	"github.com/preston-bernstein/esports-hub-service/internal/config"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
	"github.com/preston-bernstein/esports-hub-service/internal/providers/fixture"
	"github.com/preston-bernstein/esports-hub-service/internal/providers/lolesports"
	"github.com/preston-bernstein/esports-hub-service/internal/testutil"
	"github.com/preston-bernstein/esports-hub-service/internal/teststubs"
)

func testConfig() config.Config {
	return config.Config{
		Port:             "0",
		LivePollInterval: 5 * time.Millisecond,
		DisplayTimezone:  "UTC",
		Upstream: config.UpstreamConfig{
			MinInterval:   time.Millisecond,
			RetryAttempts: 1,
		},
	}
}

type stubScheduler struct {
	startCalls int
	stopCalls  int
	startErr   error
	stopErr    error
}

func (s *stubScheduler) Start(ctx context.Context) error {
	_ = ctx
	s.startCalls++
	return s.startErr
}

func (s *stubScheduler) Stop() error {
	s.stopCalls++
	return s.stopErr
}

func TestServerServesHealthAndLive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Date(2025, 2, 26, 9, 0, 0, 0, time.UTC)
	source := &teststubs.StubSource{
		LiveResp: testutil.LiveResponse(testutil.MatchEvent("m1", "inProgress", start, "T1", "GEN")),
		Notify:   make(chan struct{}),
	}

	srv := newServerWithSource(testConfig(), nil, source)
	defer srv.sources.close()
	srv.poller.Start(ctx)
	defer srv.poller.Stop(context.Background())

	select {
	case <-source.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for poller to fetch")
	}

	router := srv.Handler()

	rec := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rec, http.StatusOK)

	deadline := time.Now().Add(time.Second)
	for {
		rec = testutil.Serve(router, http.MethodGet, "/api/live", nil)
		testutil.AssertStatus(t, rec, http.StatusOK)
		var view hub.LiveView
		testutil.DecodeJSON(t, rec, &view)
		if view.Count == 1 {
			if view.Live[0].ID != "m1" {
				t.Fatalf("expected live match m1, got %s", view.Live[0].ID)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected one live match, got %d", view.Count)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServerReportsNotReadyWhenSourceFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &teststubs.StubSource{Err: errors.New("upstream down"), Notify: make(chan struct{})}
	srv := newServerWithSource(testConfig(), nil, source)
	defer srv.sources.close()
	srv.poller.Start(ctx)
	defer srv.poller.Stop(context.Background())

	<-source.Notify

	deadline := time.Now().Add(time.Second)
	for srv.poller.Status().ConsecutiveFailures == 0 {
		if time.Now().After(deadline) {
			t.Fatal("poller never recorded a failure")
		}
		time.Sleep(5 * time.Millisecond)
	}

	rec := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rec, http.StatusServiceUnavailable)
}

func TestServerMountsAdminOnlyWithToken(t *testing.T) {
	cfg := testConfig()
	srv := newServerWithSource(cfg, nil, &teststubs.StubSource{})
	defer srv.sources.close()

	req := httptest.NewRequest(http.MethodPost, "/admin/cache/purge", nil)
	rec := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rec, http.StatusNotFound)

	cfg.AdminToken = "secret"
	srv = newServerWithSource(cfg, nil, &teststubs.StubSource{})
	defer srv.sources.close()

	req = httptest.NewRequest(http.MethodPost, "/admin/cache/purge", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestServerCachesUpstreamResponses(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Leagues = time.Minute
	source := &teststubs.StubSource{}
	srv := newServerWithSource(cfg, nil, source)
	defer srv.sources.close()

	for i := 0; i < 3; i++ {
		rec := testutil.Serve(srv.Handler(), http.MethodGet, "/api/leagues", nil)
		testutil.AssertStatus(t, rec, http.StatusOK)
	}
	if got := source.CallsTo(providers.EndpointLeagues); got != 1 {
		t.Fatalf("expected one upstream leagues call, got %d", got)
	}
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	source := selectProvider(config.Config{Provider: "unknown"}, nil)
	if _, ok := source.(*fixture.Source); !ok {
		t.Fatalf("expected fixture fallback, got %T", source)
	}
}

func TestSelectProviderChoosesLolesports(t *testing.T) {
	for _, name := range []string{"lolesports", ""} {
		source := selectProvider(config.Config{
			Provider: name,
			Upstream: config.UpstreamConfig{BaseURL: "http://example.com", APIKey: "key"},
		}, nil)
		if _, ok := source.(*lolesports.Client); !ok {
			t.Fatalf("expected lolesports client for %q, got %T", name, source)
		}
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "fixture"
	srv := New(cfg, nil)
	defer srv.sources.close()
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.scheduler == nil {
		t.Fatalf("expected scheduler to be configured")
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	sched := &stubScheduler{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p, sched)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if sched.stopCalls != 1 {
		t.Fatalf("expected scheduler Stop to be called once, got %d", sched.stopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if srv.connCtx.Err() == nil {
		t.Fatalf("expected websocket context to be cancelled")
	}
}

func TestGracefulShutdownLogsErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	sched := &stubScheduler{stopErr: errors.New("scheduler failure")}
	httpSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("shutdown failure")}

	srv := newServerWithDeps(config.Config{}, logger, httpSrv, p, sched)
	srv.gracefulShutdown()

	out := buf.String()
	for _, want := range []string{"failed to stop poller", "failed to stop scheduler", "graceful shutdown failed", "shutdown complete"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log %q, got %s", want, out)
		}
	}
}

func TestGracefulShutdownHonorsTimeout(t *testing.T) {
	orig := shutdownTimeout
	shutdownTimeout = 10 * time.Millisecond
	defer func() { shutdownTimeout = orig }()

	httpSrv := &testutil.BlockingHTTPServer{Unblock: make(chan struct{})}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, &testutil.StubPoller{}, nil)

	done := make(chan struct{})
	go func() {
		srv.gracefulShutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("graceful shutdown did not respect timeout")
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.ErrHTTPServer{}, &testutil.StubPoller{}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	sched := &stubScheduler{startErr: errors.New("no jobs")}
	httpSrv := &testutil.CloseableHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr, sched)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 {
		t.Fatalf("expected poller Start called once, got %d", plr.StartCalls)
	}
	if plr.StopCalls != 1 {
		t.Fatalf("expected poller Stop called once, got %d", plr.StopCalls)
	}
	if sched.startCalls != 1 || sched.stopCalls != 1 {
		t.Fatalf("expected scheduler start/stop once, got %d/%d", sched.startCalls, sched.stopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestReadyUsesPollerStatus(t *testing.T) {
	srv := newServerWithSource(testConfig(), nil, &teststubs.StubSource{})
	defer srv.sources.close()

	// Before the first poll the service is not ready.
	rec := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rec, http.StatusServiceUnavailable)

	if srv.poller.Status().IsReady() {
		t.Fatalf("expected not ready before first poll")
	}
}

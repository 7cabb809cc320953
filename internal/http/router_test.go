package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/esports-hub-service/internal/app/hub"
	"github.com/preston-bernstein/esports-hub-service/internal/app/teams"
	"github.com/preston-bernstein/esports-hub-service/internal/http/handlers"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
	"github.com/preston-bernstein/esports-hub-service/internal/testutil"
	"github.com/preston-bernstein/esports-hub-service/internal/teststubs"
)

type stubPurger struct{ calls int }

func (s *stubPurger) Purge(ctx context.Context) error {
	_ = ctx
	s.calls++
	return nil
}

func newTestRouter(t *testing.T, routes Routes) http.Handler {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	return NewRouter(routes, Options{Logger: logger, Recorder: metrics.NewRecorder(), AllowedOrigins: []string{"https://hub.example"}})
}

func apiHandler() *handlers.Handler {
	src := &teststubs.StubSource{}
	return handlers.NewHandler(hub.NewService(src, nil), teams.NewService(src, nil), nil, nil)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(t, Routes{API: apiHandler()})

	cases := map[string]int{
		"/health":             http.StatusOK,
		"/ready":              http.StatusOK,
		"/api/leagues":        http.StatusOK,
		"/api/schedule":       http.StatusOK,
		"/api/live":           http.StatusOK,
		"/api/standings":      http.StatusBadRequest,
		"/api/matches":        http.StatusOK,
		"/api/matches/foo":    http.StatusNotFound,
		"/api/events":         http.StatusOK,
		"/api/events/unknown": http.StatusNotFound,
		"/api/sidebar":        http.StatusOK,
		"/api/teams/nobody":   http.StatusNotFound,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("route %s expected request id header", path)
		}
	}
}

func TestRouterUnknownRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(t, Routes{API: apiHandler()})

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "not found" || body["requestId"] == "" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, Routes{API: apiHandler()})
	rr := testutil.Serve(router, http.MethodDelete, "/api/live", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestRouterAdminMountedOnlyWhenConfigured(t *testing.T) {
	router := newTestRouter(t, Routes{API: apiHandler()})
	rr := testutil.Serve(router, http.MethodPost, "/admin/cache/purge", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	purger := &stubPurger{}
	router = newTestRouter(t, Routes{API: apiHandler(), Admin: handlers.NewAdminHandler(purger, "secret", nil)})
	req := httptest.NewRequest(http.MethodPost, "/admin/cache/purge", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr = testutil.ServeRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if purger.calls != 1 {
		t.Fatalf("expected purge call, got %d", purger.calls)
	}
}

func TestRouterLiveSocketMounted(t *testing.T) {
	called := false
	live := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	})
	router := newTestRouter(t, Routes{API: apiHandler(), Live: live})
	rr := testutil.Serve(router, http.MethodGet, "/ws/live", nil)
	testutil.AssertStatus(t, rr, http.StatusAccepted)
	if !called {
		t.Fatalf("expected live handler to be called")
	}
}

func TestRouterCORS(t *testing.T) {
	router := newTestRouter(t, Routes{API: apiHandler()})

	req := httptest.NewRequest(http.MethodOptions, "/api/live", nil)
	req.Header.Set("Origin", "https://hub.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://hub.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/live", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestCORSOptionsDefaultsToWildcard(t *testing.T) {
	opts := corsOptions(nil)
	if len(opts.AllowedOrigins) != 1 || opts.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origins, got %v", opts.AllowedOrigins)
	}
}

func TestRouterRecoversPanics(t *testing.T) {
	api := apiHandler()
	router := NewRouter(Routes{API: api, Live: http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})}, Options{})
	rr := testutil.Serve(router, http.MethodGet, "/ws/live", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

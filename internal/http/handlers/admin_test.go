package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/esports-hub-service/internal/testutil"
)

type stubPurger struct {
	calls int
	err   error
}

func (s *stubPurger) Purge(ctx context.Context) error {
	_ = ctx
	s.calls++
	return s.err
}

func adminRequest(method, token string) *http.Request {
	req := httptest.NewRequest(method, "/admin/cache/purge", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminPurgeRequiresAuth(t *testing.T) {
	purger := &stubPurger{}
	h := NewAdminHandler(purger, "secret", nil)

	for _, token := range []string{"", "wrong"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.PurgeCache), adminRequest(http.MethodPost, token))
		testutil.AssertJSONError(t, rr, http.StatusUnauthorized, "unauthorized")
	}
	if purger.calls != 0 {
		t.Fatalf("expected no purge without auth")
	}
}

func TestAdminPurgeDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubPurger{}, "", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.PurgeCache), adminRequest(http.MethodPost, ""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminPurgeRejectsWrongMethod(t *testing.T) {
	h := NewAdminHandler(&stubPurger{}, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.PurgeCache), adminRequest(http.MethodGet, "secret"))
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("expected Allow header POST, got %q", got)
	}
}

func TestAdminPurgeClearsCache(t *testing.T) {
	logger, buf := testutil.NewJSONBufferLogger()
	purger := &stubPurger{}
	h := NewAdminHandler(purger, "secret", logger)

	rr := testutil.ServeRequest(http.HandlerFunc(h.PurgeCache), adminRequest(http.MethodPost, "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if purger.calls != 1 {
		t.Fatalf("expected one purge, got %d", purger.calls)
	}
	entry, ok := testutil.FindLogEntry(testutil.LogEntries(t, buf), "admin cache purged")
	if !ok {
		t.Fatalf("expected purge to be logged, got %s", buf.String())
	}
	if _, ok := entry["duration_ms"]; !ok {
		t.Fatalf("expected duration_ms field, got %v", entry)
	}
}

func TestAdminPurgeFailure(t *testing.T) {
	h := NewAdminHandler(&stubPurger{err: errors.New("redis down")}, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.PurgeCache), adminRequest(http.MethodPost, "secret"))
	testutil.AssertJSONError(t, rr, http.StatusInternalServerError, "failed to purge cache")
}

func TestAdminPurgeWithoutCache(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.PurgeCache), adminRequest(http.MethodPost, "secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

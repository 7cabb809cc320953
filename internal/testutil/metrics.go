package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
)

// NewRecorderWithShutdown returns a recorder and a no-op shutdown to simplify tests.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}

// NewPrometheusRecorder builds an OTel-backed recorder with its own Prometheus registry.
// The meter provider is shut down when the test ends.
func NewPrometheusRecorder(t *testing.T) (*metrics.Recorder, http.Handler) {
	t.Helper()
	rec, handler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{
		Enabled:     true,
		ServiceName: "esports-hub-service-test",
	})
	if err != nil {
		t.Fatalf("metrics setup failed: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec, handler
}

// Scrape returns the Prometheus text exposition served by handler.
func Scrape(t *testing.T, handler http.Handler) string {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected metrics scrape 200, got %d", rr.Code)
	}
	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

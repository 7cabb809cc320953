package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	cacheHits       int
	cacheMisses     int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures in-memory counters about upstream endpoint calls and forwards
// everything to OpenTelemetry instruments when they are configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*endpointStats
	wsClients int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*endpointStats),
		otel:  otel,
	}
}

// RecordUpstreamAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordUpstreamAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.update(endpoint, func(s *endpointStats) {
		s.calls++
		s.lastCallLatency = duration
		if err != nil {
			s.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordUpstreamAttempt(endpoint, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.update(endpoint, func(s *endpointStats) {
		s.rateLimitHits++
		if retryAfter > 0 {
			s.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordCacheLookup counts a response cache hit or miss for an endpoint.
func (r *Recorder) RecordCacheLookup(endpoint string, hit bool) {
	if r == nil {
		return
	}

	r.update(endpoint, func(s *endpointStats) {
		if hit {
			s.cacheHits++
		} else {
			s.cacheMisses++
		}
	})
	if r.otel != nil {
		r.otel.recordCacheLookup(endpoint, hit)
	}
}

// RecordWebsocketClients adjusts the connected live client gauge by delta.
func (r *Recorder) RecordWebsocketClients(delta int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.wsClients += delta
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordWebsocketClients(delta)
	}
}

// WebsocketClients returns the current connected client count.
func (r *Recorder) WebsocketClients() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wsClients
}

// UpstreamCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) UpstreamCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// UpstreamErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) UpstreamErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// RateLimitHits returns the number of rate limit events seen for an endpoint.
func (r *Recorder) RateLimitHits(endpoint string) int {
	return r.Snapshot(endpoint).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for an endpoint.
func (r *Recorder) LastRetryAfter(endpoint string) time.Duration {
	return r.Snapshot(endpoint).LastRetryAfter
}

// Snapshot is a copy of the current stats for an endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	CacheHits       int
	CacheMisses     int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[endpoint]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		CacheHits:       stats.cacheHits,
		CacheMisses:     stats.cacheMisses,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// RecordJobRun tracks scheduled job executions.
func (r *Recorder) RecordJobRun(job string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordJob(job, duration, err)
}

func (r *Recorder) update(endpoint string, fn func(*endpointStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	fn(stats)
}

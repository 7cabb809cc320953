package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingSource wraps a Source with retry, backoff, and per-attempt metrics.
type retryingSource struct {
	inner       Source
	logger      *slog.Logger
	metrics     *metrics.Recorder
	sourceName  string
	maxAttempts int
	backoffFn   backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingSource wraps the given source with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingSource(inner Source, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) Source {
	return NewRetryingSourceWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingSourceWithRNG is NewRetryingSource with a caller-supplied jitter source.
func NewRetryingSourceWithRNG(inner Source, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) Source {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "source"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		sourceName:  name,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		rng: rng,
	}
}

func (r *retryingSource) Leagues(ctx context.Context) (lolapi.LeaguesResponse, error) {
	return withRetry(ctx, r, EndpointLeagues, func(ctx context.Context) (lolapi.LeaguesResponse, error) {
		return r.inner.Leagues(ctx)
	})
}

func (r *retryingSource) Schedule(ctx context.Context, leagueIDs []string, pageToken string) (lolapi.ScheduleResponse, error) {
	return withRetry(ctx, r, EndpointSchedule, func(ctx context.Context) (lolapi.ScheduleResponse, error) {
		return r.inner.Schedule(ctx, leagueIDs, pageToken)
	})
}

func (r *retryingSource) Live(ctx context.Context) (lolapi.LiveResponse, error) {
	return withRetry(ctx, r, EndpointLive, func(ctx context.Context) (lolapi.LiveResponse, error) {
		return r.inner.Live(ctx)
	})
}

func (r *retryingSource) Tournaments(ctx context.Context, leagueID string) (lolapi.TournamentsResponse, error) {
	return withRetry(ctx, r, EndpointTournaments, func(ctx context.Context) (lolapi.TournamentsResponse, error) {
		return r.inner.Tournaments(ctx, leagueID)
	})
}

func (r *retryingSource) Standings(ctx context.Context, tournamentIDs []string) (lolapi.StandingsResponse, error) {
	return withRetry(ctx, r, EndpointStandings, func(ctx context.Context) (lolapi.StandingsResponse, error) {
		return r.inner.Standings(ctx, tournamentIDs)
	})
}

func (r *retryingSource) EventDetails(ctx context.Context, id string) (lolapi.EventDetailsResponse, error) {
	return withRetry(ctx, r, EndpointEventDetails, func(ctx context.Context) (lolapi.EventDetailsResponse, error) {
		return r.inner.EventDetails(ctx, id)
	})
}

func (r *retryingSource) Teams(ctx context.Context, slug string) (lolapi.TeamsResponse, error) {
	return withRetry(ctx, r, EndpointTeams, func(ctx context.Context) (lolapi.TeamsResponse, error) {
		return r.inner.Teams(ctx, slug)
	})
}

func withRetry[T any](ctx context.Context, r *retryingSource, endpoint string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		return zero, ErrSourceUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		resp, err := call(ctx)
		r.metrics.RecordUpstreamAttempt(endpoint, time.Since(start), err)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(endpoint, rlErr.RetryAfter)
		}
		if attempt == r.maxAttempts || !retryable(err) {
			break
		}

		logWithEndpoint(ctx, r.logger, slog.LevelWarn, endpoint, "upstream fetch retry",
			"source", r.sourceName, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return zero, Unavailable(endpoint, ctx.Err())
		case <-time.After(r.computeDelay(err, attempt)):
		}
	}

	logWithEndpoint(ctx, r.logger, slog.LevelWarn, endpoint, "upstream fetch failed",
		"source", r.sourceName, "err", lastErr)
	return zero, Unavailable(endpoint, lastErr)
}

// computeDelay honours Retry-After when upstream sent one; otherwise it jitters the backoff into [base/2, base].
func (r *retryingSource) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}

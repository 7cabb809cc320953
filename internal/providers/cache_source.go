package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/esports-hub-service/internal/logging"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
)

const (
	cacheKeyPrefix = "lolesports:"

	// defaultFlightTimeout bounds a shared upstream fetch once it is detached from its callers.
	defaultFlightTimeout = 30 * time.Second
)

type refreshKey struct{}

// WithRefresh marks ctx so a CachingSource skips fresh entries, fetches upstream, and stores the
// result. Background warmers use it to replace entries before they lapse.
func WithRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

func isRefresh(ctx context.Context) bool {
	v, _ := ctx.Value(refreshKey{}).(bool)
	return v
}

// ResponseCache stores encoded upstream responses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Purge(ctx context.Context) error
}

// CacheTTLs are per-endpoint revalidation windows. A zero TTL disables caching for that endpoint.
type CacheTTLs struct {
	Leagues      time.Duration
	Schedule     time.Duration
	Live         time.Duration
	Tournaments  time.Duration
	Standings    time.Duration
	EventDetails time.Duration
	Teams        time.Duration
}

// For returns the TTL configured for an endpoint.
func (t CacheTTLs) For(endpoint string) time.Duration {
	switch endpoint {
	case EndpointLeagues:
		return t.Leagues
	case EndpointSchedule:
		return t.Schedule
	case EndpointLive:
		return t.Live
	case EndpointTournaments:
		return t.Tournaments
	case EndpointStandings:
		return t.Standings
	case EndpointEventDetails:
		return t.EventDetails
	case EndpointTeams:
		return t.Teams
	default:
		return 0
	}
}

// CachingSource serves repeated requests from a ResponseCache until their TTL lapses.
// Concurrent misses for the same key share one upstream call. The shared call runs detached
// from any single caller, so one caller giving up does not fail the others.
type CachingSource struct {
	next          Source
	cache         ResponseCache
	ttls          CacheTTLs
	logger        *slog.Logger
	metrics       *metrics.Recorder
	group         singleflight.Group
	flightTimeout time.Duration
}

var _ Purger = (*CachingSource)(nil)

// NewCachingSource wraps next with the given cache.
func NewCachingSource(next Source, cache ResponseCache, ttls CacheTTLs, logger *slog.Logger, recorder *metrics.Recorder) *CachingSource {
	return &CachingSource{
		next:          next,
		cache:         cache,
		ttls:          ttls,
		logger:        logger,
		metrics:       recorder,
		flightTimeout: defaultFlightTimeout,
	}
}

// Purge drops every cached response.
func (c *CachingSource) Purge(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Purge(ctx)
}

func (c *CachingSource) Leagues(ctx context.Context) (lolapi.LeaguesResponse, error) {
	return cached(ctx, c, EndpointLeagues, nil, func(ctx context.Context) (lolapi.LeaguesResponse, error) {
		return c.next.Leagues(ctx)
	})
}

func (c *CachingSource) Schedule(ctx context.Context, leagueIDs []string, pageToken string) (lolapi.ScheduleResponse, error) {
	params := url.Values{"leagueId": sortedCopy(leagueIDs)}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}
	return cached(ctx, c, EndpointSchedule, params, func(ctx context.Context) (lolapi.ScheduleResponse, error) {
		return c.next.Schedule(ctx, leagueIDs, pageToken)
	})
}

func (c *CachingSource) Live(ctx context.Context) (lolapi.LiveResponse, error) {
	return cached(ctx, c, EndpointLive, nil, func(ctx context.Context) (lolapi.LiveResponse, error) {
		return c.next.Live(ctx)
	})
}

func (c *CachingSource) Tournaments(ctx context.Context, leagueID string) (lolapi.TournamentsResponse, error) {
	return cached(ctx, c, EndpointTournaments, url.Values{"leagueId": {leagueID}}, func(ctx context.Context) (lolapi.TournamentsResponse, error) {
		return c.next.Tournaments(ctx, leagueID)
	})
}

func (c *CachingSource) Standings(ctx context.Context, tournamentIDs []string) (lolapi.StandingsResponse, error) {
	return cached(ctx, c, EndpointStandings, url.Values{"tournamentId": sortedCopy(tournamentIDs)}, func(ctx context.Context) (lolapi.StandingsResponse, error) {
		return c.next.Standings(ctx, tournamentIDs)
	})
}

func (c *CachingSource) EventDetails(ctx context.Context, id string) (lolapi.EventDetailsResponse, error) {
	return cached(ctx, c, EndpointEventDetails, url.Values{"id": {id}}, func(ctx context.Context) (lolapi.EventDetailsResponse, error) {
		return c.next.EventDetails(ctx, id)
	})
}

func (c *CachingSource) Teams(ctx context.Context, slug string) (lolapi.TeamsResponse, error) {
	return cached(ctx, c, EndpointTeams, url.Values{"id": {slug}}, func(ctx context.Context) (lolapi.TeamsResponse, error) {
		return c.next.Teams(ctx, slug)
	})
}

// CacheKey builds the cache key for an endpoint call. Params encode in sorted key order.
func CacheKey(endpoint string, params url.Values) string {
	key := cacheKeyPrefix + endpoint
	if encoded := params.Encode(); encoded != "" {
		key += "?" + encoded
	}
	return key
}

func cached[T any](ctx context.Context, c *CachingSource, endpoint string, params url.Values, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if c.next == nil {
		return zero, ErrSourceUnavailable
	}
	ttl := c.ttls.For(endpoint)
	if c.cache == nil || ttl <= 0 {
		return fetch(ctx)
	}

	key := CacheKey(endpoint, params)
	if isRefresh(ctx) {
		logWithEndpoint(ctx, c.logger, slog.LevelDebug, endpoint, "response cache refresh", logging.FieldCacheKey, key)
	} else {
		if resp, ok := lookup[T](ctx, c, endpoint, key); ok {
			c.metrics.RecordCacheLookup(endpoint, true)
			logWithEndpoint(ctx, c.logger, slog.LevelDebug, endpoint, "response cache hit", logging.FieldCacheKey, key)
			return resp, nil
		}
		c.metrics.RecordCacheLookup(endpoint, false)
	}

	ch := c.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout)
		defer cancel()
		resp, err := fetch(flightCtx)
		if err != nil {
			return nil, err
		}
		c.store(flightCtx, endpoint, key, resp, ttl)
		return resp, nil
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func lookup[T any](ctx context.Context, c *CachingSource, endpoint, key string) (T, bool) {
	var resp T
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logWithEndpoint(ctx, c.logger, slog.LevelWarn, endpoint, "response cache read failed", logging.FieldCacheKey, key, "err", err)
		return resp, false
	}
	if !ok {
		return resp, false
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		logWithEndpoint(ctx, c.logger, slog.LevelWarn, endpoint, "response cache entry unreadable", logging.FieldCacheKey, key, "err", err)
		return resp, false
	}
	return resp, true
}

func (c *CachingSource) store(ctx context.Context, endpoint, key string, resp any, ttl time.Duration) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logWithEndpoint(ctx, c.logger, slog.LevelWarn, endpoint, "response cache encode failed", "err", err)
		return
	}
	if err := c.cache.Set(ctx, key, raw, ttl); err != nil {
		logWithEndpoint(ctx, c.logger, slog.LevelWarn, endpoint, "response cache write failed", logging.FieldCacheKey, key, "err", err)
	}
}

func sortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

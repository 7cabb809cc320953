package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/cache"
	"github.com/preston-bernstein/esports-hub-service/internal/config"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
)

const (
	cacheBackendMemory = "memory"
	cacheBackendRedis  = "redis"
	redisPingTimeout   = 2 * time.Second
)

// sourceStack is the decorated source plus the pieces the server must purge or release.
type sourceStack struct {
	source  providers.Source
	purger  providers.Purger
	closers []func()
}

func (s sourceStack) close() {
	for _, c := range s.closers {
		c()
	}
}

// providerFactory assembles the source with shared wrappers, outermost first: cache, retry, rate limit.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) sourceStack {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.Config, base providers.Source) sourceStack {
	var stack sourceStack

	limited := providers.NewRateLimitedSource(base, cfg.Upstream.MinInterval, f.logger)
	stack.closers = append(stack.closers, limited.Close)

	retried := providers.NewRetryingSource(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), cfg.Upstream.RetryAttempts, cfg.Upstream.RetryBackoff)

	store, closeStore := f.buildCache(cfg.Cache)
	if closeStore != nil {
		stack.closers = append(stack.closers, closeStore)
	}
	cached := providers.NewCachingSource(retried, store, cacheTTLs(cfg.Cache), f.logger, f.metrics)

	stack.source = cached
	stack.purger = cached
	return stack
}

// buildCache picks the response cache backend. An unreachable Redis falls back to memory so the
// service still starts.
func (f providerFactory) buildCache(cfg config.CacheConfig) (providers.ResponseCache, func()) {
	if cfg.Backend != cacheBackendRedis {
		if cfg.Backend != cacheBackendMemory && cfg.Backend != "" && f.logger != nil {
			f.logger.Warn("unknown cache backend, using memory", slog.String("backend", cfg.Backend))
		}
		return cache.NewMemory(), nil
	}

	rc, err := cache.NewRedisFromURL(cfg.RedisURL)
	if err != nil {
		if f.logger != nil {
			f.logger.Warn("invalid redis url, using memory cache", "err", err)
		}
		return cache.NewMemory(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		if f.logger != nil {
			f.logger.Warn("redis unreachable, using memory cache", "err", err)
		}
		_ = rc.Close()
		return cache.NewMemory(), nil
	}
	return rc, func() { _ = rc.Close() }
}

// cacheTTLs maps configured windows onto endpoints. Tournaments and teams change as rarely as leagues.
func cacheTTLs(cfg config.CacheConfig) providers.CacheTTLs {
	return providers.CacheTTLs{
		Leagues:      cfg.Leagues,
		Schedule:     cfg.Schedule,
		Live:         cfg.Live,
		Tournaments:  cfg.Leagues,
		Standings:    cfg.Standings,
		EventDetails: cfg.Event,
		Teams:        cfg.Leagues,
	}
}

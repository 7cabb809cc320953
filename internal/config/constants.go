package config

import "time"

const (
	envPort           = "PORT"
	envProvider       = "PROVIDER"
	envLivePoll       = "LIVE_POLL_INTERVAL"
	envCatalogRefresh = "CATALOG_REFRESH_INTERVAL"
	envDisplayTZ      = "DISPLAY_TIMEZONE"
	envCORSOrigins    = "CORS_ALLOWED_ORIGINS"
	envAdminToken     = "ADMIN_TOKEN"
	envCacheBackend   = "CACHE_BACKEND"
	envRedisURL       = "REDIS_URL"
	envTTLLeagues     = "CACHE_TTL_LEAGUES"
	envTTLSchedule    = "CACHE_TTL_SCHEDULE"
	envTTLLive        = "CACHE_TTL_LIVE"
	envTTLStandings   = "CACHE_TTL_STANDINGS"
	envTTLEvent       = "CACHE_TTL_EVENT"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envWSSendBuffer   = "WS_SEND_BUFFER"

	defaultPort     = "4000"
	defaultProvider = "lolesports"
	// Matches the revalidation window of the live endpoint.
	defaultLivePoll       = 30 * Duration(time.Second)
	defaultCatalogRefresh = Duration(time.Hour)
	defaultDisplayTZ      = "UTC"
	defaultCORSOrigins    = "*"
	defaultCacheBackend   = "memory"
	defaultRedisURL       = "redis://localhost:6379/0"
	defaultTTLLeagues     = Duration(time.Hour)
	defaultTTLSchedule    = 60 * Duration(time.Second)
	defaultTTLLive        = 30 * Duration(time.Second)
	defaultTTLStandings   = 5 * Duration(time.Minute)
	defaultTTLEvent       = 60 * Duration(time.Second)
	defaultMetricsPort    = "9090"
	defaultServiceName    = "esports-hub-service"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultWSSendBuffer   = 16
)

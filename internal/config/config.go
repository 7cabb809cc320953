package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port                   string
	Provider               string
	LivePollInterval       Duration
	CatalogRefreshInterval Duration
	DisplayTimezone        string
	CORSAllowedOrigins     []string
	AdminToken             string
	WSSendBuffer           int
	Upstream               UpstreamConfig
	Cache                  CacheConfig
	Metrics                MetricsConfig
	Logging                LoggingConfig
}

// LoggingConfig mirrors logging.Config without importing it.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// Only a malformed upstream section is an error; other invalid values fall back to defaults.
func Load() (Config, error) {
	upstream, err := loadUpstream()
	if err != nil {
		return Config{}, fmt.Errorf("load upstream config: %w", err)
	}

	return Config{
		Port:                   portEnvOrDefault(envPort, defaultPort),
		Provider:               strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		LivePollInterval:       durationEnvOrDefault(envLivePoll, defaultLivePoll),
		CatalogRefreshInterval: durationEnvOrDefault(envCatalogRefresh, defaultCatalogRefresh),
		DisplayTimezone:        envOrDefault(envDisplayTZ, defaultDisplayTZ),
		CORSAllowedOrigins:     listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		AdminToken:             envOrDefault(envAdminToken, ""),
		WSSendBuffer:           intEnvOrDefault(envWSSendBuffer, defaultWSSendBuffer),
		Upstream:               upstream,
		Cache:                  loadCache(),
		Metrics:                loadMetrics(),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}, nil
}

// Location resolves DisplayTimezone, falling back to UTC when it is unknown.
func (c Config) Location() *time.Location {
	if loc := timeutil.ResolveTimezone(c.DisplayTimezone); loc != nil {
		return loc
	}
	return time.UTC
}

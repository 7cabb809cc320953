package config

import "strings"

// CacheConfig selects the response cache backend and per-endpoint revalidation windows.
type CacheConfig struct {
	Backend   string
	RedisURL  string
	Leagues   Duration
	Schedule  Duration
	Live      Duration
	Standings Duration
	Event     Duration
}

func loadCache() CacheConfig {
	return CacheConfig{
		Backend:   strings.ToLower(envOrDefault(envCacheBackend, defaultCacheBackend)),
		RedisURL:  envOrDefault(envRedisURL, defaultRedisURL),
		Leagues:   durationEnvOrDefault(envTTLLeagues, defaultTTLLeagues),
		Schedule:  durationEnvOrDefault(envTTLSchedule, defaultTTLSchedule),
		Live:      durationEnvOrDefault(envTTLLive, defaultTTLLive),
		Standings: durationEnvOrDefault(envTTLStandings, defaultTTLStandings),
		Event:     durationEnvOrDefault(envTTLEvent, defaultTTLEvent),
	}
}

package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// UpstreamConfig controls how we talk to the lolesports gateway.
type UpstreamConfig struct {
	BaseURL       string        `envconfig:"LOLESPORTS_BASE_URL" default:"https://esports-api.lolesports.com/persisted/gw"`
	APIKey        string        `envconfig:"LOLESPORTS_API_KEY" default:"0TvQnueqKa5mxJntVWt0w4LpLfEkrV1Ta8rQBb9Z"`
	Locale        string        `envconfig:"LOLESPORTS_LOCALE" default:"en-US"`
	Timeout       time.Duration `envconfig:"LOLESPORTS_TIMEOUT" default:"10s"`
	MinInterval   time.Duration `envconfig:"LOLESPORTS_MIN_INTERVAL" default:"100ms"`
	RetryAttempts int           `envconfig:"LOLESPORTS_RETRY_ATTEMPTS" default:"3"`
	RetryBackoff  time.Duration `envconfig:"LOLESPORTS_RETRY_BACKOFF" default:"250ms"`
}

func loadUpstream() (UpstreamConfig, error) {
	var c UpstreamConfig
	if err := envconfig.Process("", &c); err != nil {
		return UpstreamConfig{}, err
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RetryAttempts < 1 {
		c.RetryAttempts = 1
	}
	return c, nil
}

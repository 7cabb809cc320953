package server

import (
	"log/slog"

	"github.com/preston-bernstein/esports-hub-service/internal/config"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
	"github.com/preston-bernstein/esports-hub-service/internal/providers/fixture"
	"github.com/preston-bernstein/esports-hub-service/internal/providers/lolesports"
)

const (
	providerLolesports = "lolesports"
	providerFixture    = "fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.Source {
	switch cfg.Provider {
	case providerFixture:
		return fixture.New()
	case providerLolesports, "":
		return lolesports.NewClient(lolesports.Config{
			BaseURL: cfg.Upstream.BaseURL,
			APIKey:  cfg.Upstream.APIKey,
			Locale:  cfg.Upstream.Locale,
			Timeout: cfg.Upstream.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

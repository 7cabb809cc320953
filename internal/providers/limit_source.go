package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

// RateLimitedSource wraps a Source and enforces a minimum interval between upstream calls.
type RateLimitedSource struct {
	next     Source
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedSource returns a Source whose calls block until the interval elapses.
func NewRateLimitedSource(next Source, interval time.Duration, logger *slog.Logger) *RateLimitedSource {
	if interval <= 0 {
		interval = time.Second
	}
	return &RateLimitedSource{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

// Close stops the underlying ticker.
func (p *RateLimitedSource) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *RateLimitedSource) Leagues(ctx context.Context) (lolapi.LeaguesResponse, error) {
	if err := p.wait(ctx, EndpointLeagues); err != nil {
		return lolapi.LeaguesResponse{}, err
	}
	return p.next.Leagues(ctx)
}

func (p *RateLimitedSource) Schedule(ctx context.Context, leagueIDs []string, pageToken string) (lolapi.ScheduleResponse, error) {
	if err := p.wait(ctx, EndpointSchedule); err != nil {
		return lolapi.ScheduleResponse{}, err
	}
	return p.next.Schedule(ctx, leagueIDs, pageToken)
}

func (p *RateLimitedSource) Live(ctx context.Context) (lolapi.LiveResponse, error) {
	if err := p.wait(ctx, EndpointLive); err != nil {
		return lolapi.LiveResponse{}, err
	}
	return p.next.Live(ctx)
}

func (p *RateLimitedSource) Tournaments(ctx context.Context, leagueID string) (lolapi.TournamentsResponse, error) {
	if err := p.wait(ctx, EndpointTournaments); err != nil {
		return lolapi.TournamentsResponse{}, err
	}
	return p.next.Tournaments(ctx, leagueID)
}

func (p *RateLimitedSource) Standings(ctx context.Context, tournamentIDs []string) (lolapi.StandingsResponse, error) {
	if err := p.wait(ctx, EndpointStandings); err != nil {
		return lolapi.StandingsResponse{}, err
	}
	return p.next.Standings(ctx, tournamentIDs)
}

func (p *RateLimitedSource) EventDetails(ctx context.Context, id string) (lolapi.EventDetailsResponse, error) {
	if err := p.wait(ctx, EndpointEventDetails); err != nil {
		return lolapi.EventDetailsResponse{}, err
	}
	return p.next.EventDetails(ctx, id)
}

func (p *RateLimitedSource) Teams(ctx context.Context, slug string) (lolapi.TeamsResponse, error) {
	if err := p.wait(ctx, EndpointTeams); err != nil {
		return lolapi.TeamsResponse{}, err
	}
	return p.next.Teams(ctx, slug)
}

func (p *RateLimitedSource) wait(ctx context.Context, endpoint string) error {
	if p.next == nil {
		logWithEndpoint(ctx, p.logger, slog.LevelWarn, endpoint, "source unavailable")
		return ErrSourceUnavailable
	}
	select {
	case <-ctx.Done():
		logWithEndpoint(ctx, p.logger, slog.LevelWarn, endpoint, "rate-limited fetch canceled")
		return Unavailable(endpoint, ctx.Err())
	case <-p.ticker.C:
	}
	logWithEndpoint(ctx, p.logger, slog.LevelDebug, endpoint, "rate-limited upstream fetch")
	return nil
}

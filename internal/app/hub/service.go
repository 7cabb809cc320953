// Package hub builds the page views: fetch snapshots in parallel, transform them, then aggregate.
package hub

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/aggregate"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
	"github.com/preston-bernstein/esports-hub-service/internal/store"
	"github.com/preston-bernstein/esports-hub-service/internal/transform"
)

// LiveReader exposes the poller's latest live snapshot.
type LiveReader interface {
	Live() (store.LiveSnapshot, bool)
}

// Service coordinates the views over a Source.
type Service struct {
	source  providers.Source
	live    LiveReader
	palette *transform.Palette
	loc     *time.Location
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLiveReader serves live matches from the poller snapshot when one exists.
func WithLiveReader(r LiveReader) Option {
	return func(s *Service) { s.live = r }
}

// WithLocation sets the default display timezone for date labels.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger used for degraded paths.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a Service. A nil palette gets the standard tables.
func NewService(source providers.Source, palette *transform.Palette, opts ...Option) *Service {
	if palette == nil {
		palette = transform.NewPalette()
	}
	s := &Service{
		source:  source,
		palette: palette,
		loc:     time.UTC,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the default display timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) location(override *time.Location) *time.Location {
	if override != nil {
		return override
	}
	return s.loc
}

// leagues fetches and transforms every league, ordered by priority.
func (s *Service) leagues(ctx context.Context) ([]leagues.League, error) {
	raw, err := s.source.Leagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch leagues: %w", err)
	}
	return aggregate.ByPriority(transform.Leagues(raw.Data.Leagues, s.palette)), nil
}

// schedule fetches one schedule page and keeps its two-team match events.
func (s *Service) schedule(ctx context.Context, leagueIDs []string, pageToken string) ([]matches.Match, scheduleMeta, error) {
	raw, err := s.source.Schedule(ctx, leagueIDs, pageToken)
	if err != nil {
		return nil, scheduleMeta{}, fmt.Errorf("fetch schedule: %w", err)
	}
	sched := raw.Data.Schedule
	return transform.ScheduleEvents(sched.Events, s.now(), s.palette), scheduleMeta{pages: sched.Pages, updated: sched.Updated}, nil
}

// liveMatches prefers the poller snapshot and falls back to a direct fetch.
func (s *Service) liveMatches(ctx context.Context) ([]matches.Match, error) {
	if s.live != nil {
		if snap, ok := s.live.Live(); ok {
			return snap.Matches, nil
		}
	}
	raw, err := s.source.Live(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch live: %w", err)
	}
	return transform.ScheduleEvents(raw.Data.Schedule.Events, s.now(), s.palette), nil
}

// resolveMatches fills league id and image from the leagues snapshot where the event left them empty.
func resolveMatches(idx *aggregate.LeagueIndex, ms []matches.Match) []matches.Match {
	out := make([]matches.Match, 0, len(ms))
	for _, m := range ms {
		ref := aggregate.LeagueRef{ID: m.LeagueID, Slug: m.LeagueSlug, Name: m.LeagueName}
		if m.LeagueID == "" {
			m.LeagueID = idx.ResolveID(ref, "")
		}
		if m.LeagueImage == "" {
			m.LeagueImage = idx.ResolveImage(ref, "")
		}
		out = append(out, m)
	}
	return out
}

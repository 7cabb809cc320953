package hub

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/esports-hub-service/internal/aggregate"
	"github.com/preston-bernstein/esports-hub-service/internal/app"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/standings"
	"github.com/preston-bernstein/esports-hub-service/internal/transform"
)

const (
	// tournamentFetchLimit bounds concurrent per-league tournament requests on the events page.
	tournamentFetchLimit = 4
	eventUpcomingLimit   = 6
	featuredStage        = "Featured Tournament"
	labelTBD             = "TBD"
)

// Leagues returns every league by priority, fuzzily filtered when query is non-empty.
func (s *Service) Leagues(ctx context.Context, query string) (LeaguesView, error) {
	ls, err := s.leagues(ctx)
	if err != nil {
		return LeaguesView{}, err
	}
	return LeaguesView{Leagues: aggregate.SearchLeagues(ls, query)}, nil
}

// Standings selects one stage per requested tournament and flattens its sections.
func (s *Service) Standings(ctx context.Context, tournamentIDs []string) (StandingsView, error) {
	if len(tournamentIDs) == 0 {
		return StandingsView{}, fmt.Errorf("tournament ids: %w", app.ErrInvalidInput)
	}
	raw, err := s.source.Standings(ctx, tournamentIDs)
	if err != nil {
		return StandingsView{}, fmt.Errorf("fetch standings: %w", err)
	}
	out := make([]standings.Stage, 0, len(raw.Data.Standings))
	for _, st := range raw.Data.Standings {
		out = append(out, transform.Stage(st.Stages))
	}
	return StandingsView{Standings: out}, nil
}

// Events renders every tournament of every league as a card. Regions lists all regions seen
// before filtering so the filter bar stays stable.
func (s *Service) Events(ctx context.Context, region string) (EventsView, error) {
	ls, err := s.leagues(ctx)
	if err != nil {
		return EventsView{}, err
	}

	now := s.now()
	perLeague := make([][]leagues.EventCard, len(ls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tournamentFetchLimit)
	for i, league := range ls {
		g.Go(func() error {
			raw, err := s.source.Tournaments(gctx, league.ID)
			if err != nil {
				return fmt.Errorf("fetch tournaments for %s: %w", league.ID, err)
			}
			cards := make([]leagues.EventCard, 0)
			for _, t := range transform.Tournaments(raw.All()) {
				cards = append(cards, transform.EventCard(league, t, now, s.palette))
			}
			perLeague[i] = cards
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EventsView{}, err
	}

	var all []leagues.EventCard
	for _, cards := range perLeague {
		all = append(all, cards...)
	}
	selected := transform.NormalizeRegion(region)
	active, completed := aggregate.SplitEventCards(aggregate.FilterRegion(all, selected))
	return EventsView{
		Regions:        aggregate.Regions(all),
		SelectedRegion: selected,
		Upcoming:       active,
		Completed:      completed,
	}, nil
}

// EventDetail looks a league up by id and returns its featured tournament (the first not yet
// over, else the first listed) with up to six unstarted matches.
func (s *Service) EventDetail(ctx context.Context, leagueID string) (EventDetailView, error) {
	ls, err := s.leagues(ctx)
	if err != nil {
		return EventDetailView{}, err
	}
	var (
		league leagues.League
		found  bool
	)
	for _, l := range ls {
		if l.ID == leagueID {
			league, found = l, true
			break
		}
	}
	if !found {
		return EventDetailView{}, fmt.Errorf("league %s: %w", leagueID, app.ErrNotFound)
	}

	var (
		ts   []leagues.Tournament
		page []matches.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := s.source.Tournaments(gctx, league.ID)
		if err != nil {
			return fmt.Errorf("fetch tournaments for %s: %w", league.ID, err)
		}
		ts = transform.Tournaments(raw.All())
		return nil
	})
	g.Go(func() error {
		var err error
		page, _, err = s.schedule(gctx, []string{league.ID}, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return EventDetailView{}, err
	}

	now := s.now()
	view := EventDetailView{
		League:         league,
		Stage:          featuredStage,
		DateRangeLabel: transform.LongRange(leagues.Tournament{}),
		LocationLabel:  labelTBD,
		Upcoming:       []UpcomingMatch{},
	}
	if t, ok := aggregate.CurrentTournament(ts, now, transform.EndsOnOrAfter); ok {
		view.Tournament = &t
		view.DateRangeLabel = transform.LongRange(t)
	}

	for _, m := range page {
		if len(view.Upcoming) == eventUpcomingLimit {
			break
		}
		if m.LeagueID != league.ID || m.State != matches.StateUnstarted {
			continue
		}
		eta := labelTBD
		if start := m.Start(); !start.IsZero() {
			eta = transform.FormatETA(start, now)
		}
		view.Upcoming = append(view.Upcoming, UpcomingMatch{Match: m, ETA: eta})
	}
	return view, nil
}

package hub

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/esports-hub-service/internal/aggregate"
	"github.com/preston-bernstein/esports-hub-service/internal/app"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/logging"
	"github.com/preston-bernstein/esports-hub-service/internal/transform"
)

// Schedule fetches one schedule page and the live matches concurrently. In-progress events of
// the page are dropped in favour of the live list.
func (s *Service) Schedule(ctx context.Context, leagueIDs []string, pageToken string) (ScheduleView, error) {
	var (
		page []matches.Match
		meta scheduleMeta
		live []matches.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, meta, err = s.schedule(gctx, leagueIDs, pageToken)
		return err
	})
	g.Go(func() error {
		var err error
		live, err = s.liveMatches(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return ScheduleView{}, err
	}

	parts := aggregate.Partition(page)
	return ScheduleView{
		Upcoming:  parts.Upcoming,
		Completed: parts.Completed,
		Live:      nonNil(live),
		Pages:     Pages{Older: meta.pages.Older, Newer: meta.pages.Newer},
		UpdatedAt: meta.updated,
	}, nil
}

// Live returns the current live matches.
func (s *Service) Live(ctx context.Context) (LiveView, error) {
	live, err := s.liveMatches(ctx)
	if err != nil {
		return LiveView{}, err
	}
	live = nonNil(live)
	return LiveView{Live: live, Count: len(live)}, nil
}

// Matches lists the current schedule page by calendar day: completed matches for the results
// tab, everything else for the schedule tab. Missing league images come from the leagues list.
func (s *Service) Matches(ctx context.Context, tab Tab, loc *time.Location) (MatchesView, error) {
	var (
		page []matches.Match
		ls   []leagues.League
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, _, err = s.schedule(gctx, nil, "")
		return err
	})
	g.Go(func() error {
		var err error
		ls, err = s.leagues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return MatchesView{}, err
	}

	sorted := aggregate.SortByStart(resolveMatches(aggregate.NewLeagueIndex(ls), page))
	if tab == TabResults {
		sorted = aggregate.Completed(sorted)
	} else {
		sorted = aggregate.NotCompleted(sorted)
	}

	groups := aggregate.GroupByDate(sorted, s.location(loc))
	if groups == nil {
		groups = []matches.DateGroup{}
	}
	return MatchesView{Tab: tab, Groups: groups}, nil
}

// MatchDetail returns one match with its games, the head-to-head record, and both teams'
// recent form drawn from the league's completed schedule. History is best effort: a failed
// schedule fetch leaves it empty rather than failing the view.
func (s *Service) MatchDetail(ctx context.Context, id string, loc *time.Location) (MatchDetailView, error) {
	if id == "" {
		return MatchDetailView{}, fmt.Errorf("match id: %w", app.ErrInvalidInput)
	}
	raw, err := s.source.EventDetails(ctx, id)
	if err != nil {
		return MatchDetailView{}, fmt.Errorf("fetch event details: %w", err)
	}
	event := raw.Data.Event
	if event.ID == "" && event.Match.ID == "" && len(event.Match.Teams) == 0 {
		return MatchDetailView{}, fmt.Errorf("match %s: %w", id, app.ErrNotFound)
	}

	detail := transform.EventDetails(event, s.now(), s.palette)
	view := MatchDetailView{
		Detail:      detail,
		Team1Recent: []matches.PastMatch{},
		Team2Recent: []matches.PastMatch{},
	}

	var leagueIDs []string
	if detail.LeagueID != "" {
		leagueIDs = []string{detail.LeagueID}
	}
	page, _, err := s.schedule(ctx, leagueIDs, "")
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "match history unavailable",
			logging.FieldEventID, id,
			"error", err,
		)
		return view, nil
	}

	history := make([]matches.Match, 0, len(page))
	for _, m := range aggregate.SortByStartDesc(aggregate.Completed(page)) {
		if m.ID != detail.ID {
			history = append(history, m)
		}
	}
	effective := s.location(loc)
	view.HeadToHead = aggregate.HeadToHead(history, detail.Team1.Code, detail.Team2.Code)
	view.Team1Recent = aggregate.RecentForm(history, detail.Team1.Code, effective)
	view.Team2Recent = aggregate.RecentForm(history, detail.Team2.Code, effective)
	return view, nil
}

func nonNil(ms []matches.Match) []matches.Match {
	if ms == nil {
		return []matches.Match{}
	}
	return ms
}

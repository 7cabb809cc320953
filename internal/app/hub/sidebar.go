package hub

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/esports-hub-service/internal/aggregate"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
)

const (
	sidebarUpcomingLimit  = 10
	sidebarCompletedLimit = 5
)

// Sidebar builds the right rail from the current schedule page, the live list, and the leagues
// snapshot. Ongoing league groups skip any league already shown as live.
func (s *Service) Sidebar(ctx context.Context, loc *time.Location) (SidebarView, error) {
	var (
		page []matches.Match
		live []matches.Match
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
		live, err = s.liveMatches(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ls, err = s.leagues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return SidebarView{}, err
	}

	idx := aggregate.NewLeagueIndex(ls)
	parts := aggregate.Partition(page)
	upcoming := parts.Upcoming
	completed := aggregate.Take(parts.Completed, sidebarCompletedLimit)

	upcomingLive := make([]matches.Match, 0, len(live)+sidebarUpcomingLimit)
	upcomingLive = append(upcomingLive, live...)
	upcomingLive = append(upcomingLive, aggregate.Take(upcoming, sidebarUpcomingLimit)...)

	effective := s.location(loc)
	liveEvents := aggregate.LeagueEvents(live, true, effective)
	ongoing := make([]matches.Match, 0, len(upcoming)+len(completed))
	ongoing = append(ongoing, upcoming...)
	ongoing = append(ongoing, completed...)
	ongoingEvents := aggregate.ExcludeLeagues(aggregate.LeagueEvents(ongoing, false, effective), liveEvents)

	return SidebarView{
		UpcomingLive:  resolveMatches(idx, upcomingLive),
		Completed:     resolveMatches(idx, completed),
		LiveCount:     len(live),
		LiveEvents:    resolveEvents(idx, liveEvents),
		OngoingEvents: resolveEvents(idx, ongoingEvents),
	}, nil
}

// resolveEvents fills route id, image, and region from the leagues snapshot. Region resolves by
// id then slug, falling back to the event's own badge.
func resolveEvents(idx *aggregate.LeagueIndex, events []leagues.SidebarEvent) []leagues.SidebarEvent {
	out := make([]leagues.SidebarEvent, 0, len(events))
	for _, e := range events {
		ref := aggregate.LeagueRef{ID: e.LeagueID, Slug: e.LeagueSlug, Name: e.Name}
		if e.LeagueID == "" {
			e.LeagueID = idx.ResolveID(ref, "")
		}
		e.Image = idx.ResolveImage(ref, e.Image)
		e.Region = idx.ResolveRegion(aggregate.LeagueRef{ID: e.LeagueID, Slug: e.LeagueSlug}, e.Region)
		out = append(out, e)
	}
	return out
}

package providers

import (
	"context"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

// Upstream endpoint names, used for logging, metrics, and cache keys.
const (
	EndpointLeagues      = "getLeagues"
	EndpointSchedule     = "getSchedule"
	EndpointLive         = "getLive"
	EndpointTournaments  = "getTournamentsForLeague"
	EndpointStandings    = "getStandings"
	EndpointEventDetails = "getEventDetails"
	EndpointTeams        = "getTeams"
)

// Source fetches raw snapshots from the esports data API. Implementations return errors
// satisfying errors.Is(err, ErrSourceUnavailable) for every upstream failure.
type Source interface {
	Leagues(ctx context.Context) (lolapi.LeaguesResponse, error)
	// Schedule fetches one page. Empty leagueIDs means every league; empty pageToken means the current page.
	Schedule(ctx context.Context, leagueIDs []string, pageToken string) (lolapi.ScheduleResponse, error)
	Live(ctx context.Context) (lolapi.LiveResponse, error)
	Tournaments(ctx context.Context, leagueID string) (lolapi.TournamentsResponse, error)
	Standings(ctx context.Context, tournamentIDs []string) (lolapi.StandingsResponse, error)
	EventDetails(ctx context.Context, id string) (lolapi.EventDetailsResponse, error)
	Teams(ctx context.Context, slug string) (lolapi.TeamsResponse, error)
}

// Purger is implemented by sources that hold cached responses.
type Purger interface {
	Purge(ctx context.Context) error
}

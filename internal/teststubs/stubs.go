package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

// StubSource is a test double for providers.Source. Responses keyed by id fall back to the
// zero value when missing.
type StubSource struct {
	LeaguesResp     lolapi.LeaguesResponse
	ScheduleResp    lolapi.ScheduleResponse
	LiveResp        lolapi.LiveResponse
	TournamentsResp map[string]lolapi.TournamentsResponse
	StandingsResp   lolapi.StandingsResponse
	EventResp       map[string]lolapi.EventDetailsResponse
	TeamsResp       map[string]lolapi.TeamsResponse

	// Err is returned by every call unless Errs names the endpoint.
	Err  error
	Errs map[string]error

	Calls  atomic.Int32
	Notify chan struct{}

	mu            sync.Mutex
	perEndpoint   map[string]int
	lastLeagueIDs []string
	lastPageToken string
}

func (s *StubSource) Leagues(ctx context.Context) (lolapi.LeaguesResponse, error) {
	_ = ctx
	return s.LeaguesResp, s.track("getLeagues")
}

func (s *StubSource) Schedule(ctx context.Context, leagueIDs []string, pageToken string) (lolapi.ScheduleResponse, error) {
	_ = ctx
	s.mu.Lock()
	s.lastLeagueIDs = append([]string(nil), leagueIDs...)
	s.lastPageToken = pageToken
	s.mu.Unlock()
	return s.ScheduleResp, s.track("getSchedule")
}

func (s *StubSource) Live(ctx context.Context) (lolapi.LiveResponse, error) {
	_ = ctx
	return s.LiveResp, s.track("getLive")
}

func (s *StubSource) Tournaments(ctx context.Context, leagueID string) (lolapi.TournamentsResponse, error) {
	_ = ctx
	return s.TournamentsResp[leagueID], s.track("getTournamentsForLeague")
}

func (s *StubSource) Standings(ctx context.Context, tournamentIDs []string) (lolapi.StandingsResponse, error) {
	_ = ctx
	_ = tournamentIDs
	return s.StandingsResp, s.track("getStandings")
}

func (s *StubSource) EventDetails(ctx context.Context, id string) (lolapi.EventDetailsResponse, error) {
	_ = ctx
	return s.EventResp[id], s.track("getEventDetails")
}

func (s *StubSource) Teams(ctx context.Context, slug string) (lolapi.TeamsResponse, error) {
	_ = ctx
	return s.TeamsResp[slug], s.track("getTeams")
}

// CallsTo returns how many times an upstream endpoint was requested.
func (s *StubSource) CallsTo(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.perEndpoint[endpoint]
}

// LastSchedule returns the arguments of the most recent Schedule call.
func (s *StubSource) LastSchedule() ([]string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastLeagueIDs, s.lastPageToken
}

func (s *StubSource) track(endpoint string) error {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.perEndpoint == nil {
		s.perEndpoint = make(map[string]int)
	}
	s.perEndpoint[endpoint]++
	if err, ok := s.Errs[endpoint]; ok {
		return err
	}
	return s.Err
}

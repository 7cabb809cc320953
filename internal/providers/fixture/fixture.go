package fixture

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

// Source returns a static, clock-relative snapshot set useful for local testing and bootstrapping.
type Source struct {
	now func() time.Time
}

// New creates a fixture source with a time source.
func New() *Source {
	return &Source{
		now: time.Now,
	}
}

var fixtureLeagues = []lolapi.League{
	{ID: "98767991310872058", Slug: "lck", Name: "LCK", Image: "https://static.lolesports.com/leagues/lck.png", Region: "KOREA", Priority: 1},
	{ID: "98767991302996019", Slug: "lec", Name: "LEC", Image: "https://static.lolesports.com/leagues/lec.png", Region: "EUROPE", Priority: 2},
	{ID: "98767975604431411", Slug: "worlds", Name: "Worlds", Image: "https://static.lolesports.com/leagues/worlds.png", Region: "INTERNATIONAL", Priority: 3},
}

// currentTournaments is indexed like fixtureLeagues.
var currentTournaments = []string{"fixture-lck-split", "fixture-lec-winter", "fixture-worlds"}

type fixtureTeam struct {
	code, name string
	wins, loss int
}

var fixtureTeams = map[string]fixtureTeam{
	"T1":  {code: "T1", name: "T1", wins: 5, loss: 1},
	"GEN": {code: "GEN", name: "Gen.G", wins: 4, loss: 2},
	"G2":  {code: "G2", name: "G2 Esports", wins: 3, loss: 3},
	"FNC": {code: "FNC", name: "Fnatic", wins: 4, loss: 2},
}

type fixtureMatch struct {
	id       string
	league   int
	offset   time.Duration
	state    string
	block    string
	home     string
	away     string
	homeWins int
	awayWins int
}

var fixtureMatches = []fixtureMatch{
	{id: "fixture-1", league: 0, offset: -48 * time.Hour, state: "completed", block: "Week 1", home: "T1", away: "GEN", homeWins: 2, awayWins: 1},
	{id: "fixture-2", league: 1, offset: -24 * time.Hour, state: "completed", block: "Week 1", home: "G2", away: "FNC", homeWins: 1, awayWins: 2},
	{id: "fixture-3", league: 0, offset: -1 * time.Hour, state: "inProgress", block: "Week 2", home: "GEN", away: "T1", homeWins: 1, awayWins: 0},
	{id: "fixture-4", league: 1, offset: 2 * time.Hour, state: "unstarted", block: "Week 2", home: "FNC", away: "G2"},
	{id: "fixture-5", league: 0, offset: 26 * time.Hour, state: "unstarted", block: "Week 3", home: "T1", away: "GEN"},
}

func (s *Source) Leagues(ctx context.Context) (lolapi.LeaguesResponse, error) {
	_ = ctx
	var resp lolapi.LeaguesResponse
	resp.Data.Leagues = append([]lolapi.League(nil), fixtureLeagues...)
	return resp, nil
}

// Schedule returns every fixture match plus one show block. Page tokens are ignored.
func (s *Source) Schedule(ctx context.Context, leagueIDs []string, pageToken string) (lolapi.ScheduleResponse, error) {
	_ = ctx
	_ = pageToken
	start := s.start()

	var resp lolapi.ScheduleResponse
	resp.Data.Schedule.Updated = start.Format(time.RFC3339)
	for _, m := range fixtureMatches {
		if !wantLeague(leagueIDs, fixtureLeagues[m.league].ID) {
			continue
		}
		resp.Data.Schedule.Events = append(resp.Data.Schedule.Events, scheduleEvent(m, start))
	}
	if wantLeague(leagueIDs, fixtureLeagues[0].ID) {
		resp.Data.Schedule.Events = append(resp.Data.Schedule.Events, lolapi.Event{
			StartTime: start.Add(3 * time.Hour).Format(time.RFC3339),
			BlockName: "Analyst Desk",
			State:     "unstarted",
			Type:      "show",
			League:    leagueRef(fixtureLeagues[0]),
		})
	}
	return resp, nil
}

func (s *Source) Live(ctx context.Context) (lolapi.LiveResponse, error) {
	_ = ctx
	start := s.start()

	var resp lolapi.LiveResponse
	for _, m := range fixtureMatches {
		if m.state == "inProgress" {
			resp.Data.Schedule.Events = append(resp.Data.Schedule.Events, scheduleEvent(m, start))
		}
	}
	return resp, nil
}

func (s *Source) Tournaments(ctx context.Context, leagueID string) (lolapi.TournamentsResponse, error) {
	_ = ctx
	today := s.start().Truncate(24 * time.Hour)
	date := func(days int) string { return timeutil.FormatDate(today.AddDate(0, 0, days)) }

	var ts []lolapi.Tournament
	switch leagueID {
	case fixtureLeagues[0].ID:
		ts = []lolapi.Tournament{
			{ID: currentTournaments[0], Slug: "lck_split_1", StartDate: date(-30), EndDate: date(30)},
			{ID: "fixture-lck-cup", Slug: "lck_cup", StartDate: date(-120), EndDate: date(-60)},
		}
	case fixtureLeagues[1].ID:
		ts = []lolapi.Tournament{{ID: currentTournaments[1], Slug: "lec_winter", StartDate: date(-40), EndDate: date(10)}}
	case fixtureLeagues[2].ID:
		ts = []lolapi.Tournament{{ID: currentTournaments[2], Slug: "worlds", StartDate: date(120), EndDate: date(150)}}
	}

	var resp lolapi.TournamentsResponse
	resp.Data.Leagues = []lolapi.TournamentList{{Tournaments: ts}}
	return resp, nil
}

func (s *Source) Standings(ctx context.Context, tournamentIDs []string) (lolapi.StandingsResponse, error) {
	_ = ctx
	var resp lolapi.StandingsResponse
	for range tournamentIDs {
		resp.Data.Standings = append(resp.Data.Standings, lolapi.Standing{Stages: []lolapi.Stage{
			{Name: "Playoffs", Type: "bracket", Slug: "playoffs"},
			{
				Name: "Regular Season",
				Type: "groups",
				Slug: "regular_season",
				Sections: []lolapi.Section{{
					Name: "Regular Season",
					Rankings: []lolapi.Ranking{
						{Ordinal: 1, Teams: []lolapi.StandingTeam{standingTeam("T1")}},
						{Ordinal: 2, Teams: []lolapi.StandingTeam{standingTeam("GEN"), standingTeam("FNC")}},
						{Ordinal: 4, Teams: []lolapi.StandingTeam{standingTeam("G2")}},
					},
				}},
			},
		}})
	}
	return resp, nil
}

// EventDetails returns the per-game breakdown for a fixture match, or an empty event when the id is unknown.
func (s *Source) EventDetails(ctx context.Context, id string) (lolapi.EventDetailsResponse, error) {
	_ = ctx
	var resp lolapi.EventDetailsResponse
	for _, m := range fixtureMatches {
		if m.id != id {
			continue
		}
		resp.Data.Event = eventDetails(m, s.start())
	}
	return resp, nil
}

func (s *Source) Teams(ctx context.Context, slug string) (lolapi.TeamsResponse, error) {
	_ = ctx
	var resp lolapi.TeamsResponse
	team, ok := fixtureTeams[strings.ToUpper(slug)]
	if !ok {
		return resp, nil
	}
	home := fixtureLeagues[0]
	if team.code == "G2" || team.code == "FNC" {
		home = fixtureLeagues[1]
	}
	resp.Data.Teams = []lolapi.Team{{
		ID:         teamID(team.code),
		Slug:       strings.ToLower(team.code),
		Name:       team.name,
		Code:       team.code,
		Image:      teamImage(team.code),
		Status:     "active",
		HomeLeague: &lolapi.HomeLeague{Name: home.Name, Region: home.Region},
		Players: []lolapi.Player{
			{ID: teamID(team.code) + "-top", SummonerName: team.code + " Top", Role: "top"},
			{ID: teamID(team.code) + "-jng", SummonerName: team.code + " Jungle", Role: "jungle"},
			{ID: teamID(team.code) + "-mid", SummonerName: team.code + " Mid", Role: "mid"},
			{ID: teamID(team.code) + "-bot", SummonerName: team.code + " Bot", Role: "bottom"},
			{ID: teamID(team.code) + "-sup", SummonerName: team.code + " Support", Role: "support"},
		},
	}}
	return resp, nil
}

func (s *Source) start() time.Time {
	return s.now().UTC().Truncate(time.Hour)
}

func wantLeague(ids []string, id string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, want := range ids {
		if want == id {
			return true
		}
	}
	return false
}

func leagueRef(l lolapi.League) lolapi.LeagueRef {
	return lolapi.LeagueRef{ID: l.ID, Slug: l.Slug, Name: l.Name, Image: l.Image, Region: l.Region, Priority: l.Priority}
}

func scheduleEvent(m fixtureMatch, start time.Time) lolapi.Event {
	return lolapi.Event{
		ID:        m.id,
		StartTime: start.Add(m.offset).Format(time.RFC3339),
		BlockName: m.block,
		State:     m.state,
		Type:      "match",
		League:    leagueRef(fixtureLeagues[m.league]),
		Match: &lolapi.Match{
			ID: m.id,
			Teams: []lolapi.MatchTeam{
				matchTeam(m.home, m.homeWins, m.awayWins, m.state),
				matchTeam(m.away, m.awayWins, m.homeWins, m.state),
			},
			Strategy: lolapi.Strategy{Type: "bestOf", Count: 3},
		},
	}
}

func matchTeam(code string, wins, opponentWins int, state string) lolapi.MatchTeam {
	team := fixtureTeams[code]
	out := lolapi.MatchTeam{
		Name:   team.name,
		Code:   team.code,
		Image:  teamImage(code),
		Record: &lolapi.TeamRecord{Wins: team.wins, Losses: team.loss},
	}
	if state == "unstarted" {
		return out
	}
	out.Result = &lolapi.TeamResult{GameWins: wins}
	if state == "completed" {
		out.Result.Outcome = "loss"
		if wins > opponentWins {
			out.Result.Outcome = "win"
		}
	}
	return out
}

func eventDetails(m fixtureMatch, start time.Time) lolapi.EventDetails {
	ev := scheduleEvent(m, start)
	detail := lolapi.EventDetails{
		ID:         m.id,
		StartTime:  ev.StartTime,
		BlockName:  ev.BlockName,
		State:      ev.State,
		Type:       ev.Type,
		League:     ev.League,
		Tournament: lolapi.TournamentRef{ID: currentTournaments[m.league]},
		Match: lolapi.DetailMatch{
			ID:       m.id,
			Strategy: ev.Match.Strategy,
		},
	}
	for _, t := range ev.Match.Teams {
		detail.Match.Teams = append(detail.Match.Teams, lolapi.DetailTeam{
			ID:     teamID(t.Code),
			Slug:   strings.ToLower(t.Code),
			Name:   t.Name,
			Code:   t.Code,
			Image:  t.Image,
			Result: t.Result,
			Record: t.Record,
		})
	}

	// Home takes its games first, then away.
	played := m.homeWins + m.awayWins
	for n := 1; n <= played; n++ {
		winner, loser := m.home, m.away
		if n > m.homeWins {
			winner, loser = m.away, m.home
		}
		detail.Match.Games = append(detail.Match.Games, lolapi.Game{
			ID:     m.id + "-g" + strconv.Itoa(n),
			Number: n,
			State:  "completed",
			Teams: []lolapi.GameTeam{
				{ID: teamID(winner), Side: "blue", Result: &lolapi.TeamResult{Outcome: "win"}},
				{ID: teamID(loser), Side: "red", Result: &lolapi.TeamResult{Outcome: "loss"}},
			},
		})
	}
	if m.state == "inProgress" {
		detail.Match.Games = append(detail.Match.Games, lolapi.Game{
			ID:     m.id + "-live",
			Number: played + 1,
			State:  "inProgress",
			Teams:  []lolapi.GameTeam{{ID: teamID(m.home), Side: "blue"}, {ID: teamID(m.away), Side: "red"}},
		})
	}
	return detail
}

func standingTeam(code string) lolapi.StandingTeam {
	team := fixtureTeams[code]
	return lolapi.StandingTeam{
		ID:     teamID(code),
		Slug:   strings.ToLower(code),
		Name:   team.name,
		Code:   code,
		Image:  teamImage(code),
		Record: lolapi.TeamRecord{Wins: team.wins, Losses: team.loss},
	}
}

func teamID(code string) string {
	return "fixture-team-" + strings.ToLower(code)
}

func teamImage(code string) string {
	return "https://static.lolesports.com/teams/" + strings.ToLower(code) + ".png"
}

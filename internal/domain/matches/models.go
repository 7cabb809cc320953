package matches

import (
	"encoding/json"
	"strings"
	"time"
)

// State mirrors the upstream match lifecycle. A match is in exactly one state.
type State string

const (
	StateUnstarted  State = "unstarted"
	StateInProgress State = "inProgress"
	StateCompleted  State = "completed"
)

// ParseState maps an upstream state string, treating anything unknown as unstarted.
func ParseState(raw string) State {
	switch State(raw) {
	case StateInProgress:
		return StateInProgress
	case StateCompleted:
		return StateCompleted
	default:
		return StateUnstarted
	}
}

// Outcome is a per-team result flag. The zero value means unknown and encodes as null.
type Outcome string

const (
	OutcomeUnknown Outcome = ""
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
)

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o == OutcomeUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(o))
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OutcomeUnknown
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Outcome(raw)
	return nil
}

// Team is one side of a match. Record and result fields are optional.
type Team struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Wins     *int    `json:"wins,omitempty"`
	Losses   *int    `json:"losses,omitempty"`
	GameWins *int    `json:"gameWins,omitempty"`
	Outcome  Outcome `json:"outcome"`
}

// Is reports whether the team's code matches, ignoring case.
func (t Team) Is(code string) bool {
	return code != "" && strings.EqualFold(t.Code, code)
}

// Score returns games won, zero when no result was reported.
func (t Team) Score() int {
	if t.GameWins == nil {
		return 0
	}
	return *t.GameWins
}

// Match is the view-ready shape of a schedule event.
type Match struct {
	ID           string     `json:"id"`
	StartTime    *time.Time `json:"startTime"`
	RelativeTime string     `json:"relativeTime"`
	BlockName    string     `json:"blockName"`
	LeagueName   string     `json:"leagueName"`
	LeagueID     string     `json:"leagueId,omitempty"`
	LeagueSlug   string     `json:"leagueSlug"`
	LeagueImage  string     `json:"leagueImage,omitempty"`
	LeagueColor  string     `json:"leagueColor"`
	Team1        Team       `json:"team1"`
	Team2        Team       `json:"team2"`
	BestOf       int        `json:"bestOf"`
	State        State      `json:"state"`
	IsLive       bool       `json:"isLive"`
}

// Start returns the scheduled start, or the zero time when none parsed.
func (m Match) Start() time.Time {
	if m.StartTime == nil {
		return time.Time{}
	}
	return *m.StartTime
}

// Involves reports whether either participant carries the code.
func (m Match) Involves(code string) bool {
	return m.Team1.Is(code) || m.Team2.Is(code)
}

// Side returns the participant with the code first, then its opponent.
func (m Match) Side(code string) (own, opponent Team, ok bool) {
	switch {
	case m.Team1.Is(code):
		return m.Team1, m.Team2, true
	case m.Team2.Is(code):
		return m.Team2, m.Team1, true
	default:
		return Team{}, Team{}, false
	}
}

// Won applies the win rule: an explicit win outcome, or a higher game count on a completed match.
func (m Match) Won(team, opponent Team) bool {
	if team.Outcome == OutcomeWin {
		return true
	}
	return m.State == StateCompleted && team.Score() > opponent.Score()
}

// DateGroup is a calendar label with the matches that fall on it, in input order.
type DateGroup struct {
	Date    string  `json:"date"`
	Matches []Match `json:"matches"`
}

// Partition splits matches by lifecycle state.
type Partition struct {
	Upcoming  []Match `json:"upcoming"`
	Live      []Match `json:"live"`
	Completed []Match `json:"completed"`
}

// HeadToHead summarises completed meetings between two teams.
type HeadToHead struct {
	Count     int `json:"h2hCount"`
	Team1Wins int `json:"h2hTeam1Wins"`
	Team2Wins int `json:"h2hTeam2Wins"`
}

// PastMatch is one entry of a team's recent form.
type PastMatch struct {
	ID            string `json:"id"`
	ScoreFor      int    `json:"scoreFor"`
	ScoreAgainst  int    `json:"scoreAgainst"`
	OpponentCode  string `json:"opponentCode"`
	OpponentName  string `json:"opponentName"`
	OpponentImage string `json:"opponentImage"`
	Date          string `json:"date"`
	Won           bool   `json:"won"`
}

// Winner names the side that took a game. Empty encodes as null.
type Winner string

const (
	WinnerNone  Winner = ""
	WinnerTeam1 Winner = "team1"
	WinnerTeam2 Winner = "team2"
)

func (w Winner) MarshalJSON() ([]byte, error) {
	if w == WinnerNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(w))
}

// GameResult is one map slot of a series.
type GameResult struct {
	Number int    `json:"number"`
	State  State  `json:"state"`
	Winner Winner `json:"winner"`
}

// Detail is a match plus its per-game breakdown.
type Detail struct {
	Match
	TournamentID string       `json:"tournamentId,omitempty"`
	Region       string       `json:"region,omitempty"`
	Games        []GameResult `json:"games"`
}

// Package lolapi holds the raw response shapes of the lolesports persisted gateway.
// Nothing outside the providers and transform packages should depend on them.
package lolapi

// LeaguesResponse is the getLeagues payload.
type LeaguesResponse struct {
	Data struct {
		Leagues []League `json:"leagues"`
	} `json:"data"`
}

type League struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Region   string `json:"region"`
	Priority int    `json:"priority"`
}

// ScheduleResponse is the getSchedule payload.
type ScheduleResponse struct {
	Data struct {
		Schedule Schedule `json:"schedule"`
	} `json:"data"`
}

type Schedule struct {
	Updated string  `json:"updated"`
	Pages   Pages   `json:"pages"`
	Events  []Event `json:"events"`
}

// Pages carries opaque base64 page tokens.
type Pages struct {
	Older string `json:"older,omitempty"`
	Newer string `json:"newer,omitempty"`
}

// LiveResponse is the getLive payload. Events are pre-filtered to in-progress by upstream.
type LiveResponse struct {
	Data struct {
		Schedule LiveSchedule `json:"schedule"`
	} `json:"data"`
}

type LiveSchedule struct {
	Events []Event `json:"events"`
}

// Event is one schedule entry. Shows carry no match.
type Event struct {
	ID        string    `json:"id,omitempty"`
	StartTime string    `json:"startTime"`
	BlockName string    `json:"blockName"`
	State     string    `json:"state"`
	Type      string    `json:"type"`
	League    LeagueRef `json:"league"`
	Match     *Match    `json:"match,omitempty"`
}

type LeagueRef struct {
	ID       string `json:"id,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Region   string `json:"region,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

type Match struct {
	ID       string      `json:"id"`
	Teams    []MatchTeam `json:"teams"`
	Strategy Strategy    `json:"strategy"`
}

type MatchTeam struct {
	Name   string      `json:"name"`
	Code   string      `json:"code"`
	Image  string      `json:"image"`
	Result *TeamResult `json:"result,omitempty"`
	Record *TeamRecord `json:"record,omitempty"`
}

type TeamResult struct {
	GameWins int    `json:"gameWins"`
	Outcome  string `json:"outcome,omitempty"`
}

type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type Strategy struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TournamentsResponse is the getTournamentsForLeague payload.
type TournamentsResponse struct {
	Data struct {
		Leagues []TournamentList `json:"leagues"`
	} `json:"data"`
}

type TournamentList struct {
	Tournaments []Tournament `json:"tournaments"`
}

// Tournament dates are plain YYYY-MM-DD strings.
type Tournament struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// All flattens the per-league tournament lists in response order.
func (r TournamentsResponse) All() []Tournament {
	var out []Tournament
	for _, l := range r.Data.Leagues {
		out = append(out, l.Tournaments...)
	}
	return out
}

// StandingsResponse is the getStandings payload.
type StandingsResponse struct {
	Data struct {
		Standings []Standing `json:"standings"`
	} `json:"data"`
}

type Standing struct {
	Stages []Stage `json:"stages"`
}

// AllStages flattens stages across every requested tournament.
func (r StandingsResponse) AllStages() []Stage {
	var out []Stage
	for _, st := range r.Data.Standings {
		out = append(out, st.Stages...)
	}
	return out
}

type Stage struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Slug     string    `json:"slug"`
	Sections []Section `json:"sections"`
}

type Section struct {
	Name     string    `json:"name"`
	Rankings []Ranking `json:"rankings"`
}

type Ranking struct {
	Ordinal int            `json:"ordinal"`
	Teams   []StandingTeam `json:"teams"`
}

type StandingTeam struct {
	ID     string     `json:"id"`
	Slug   string     `json:"slug"`
	Name   string     `json:"name"`
	Code   string     `json:"code"`
	Image  string     `json:"image"`
	Record TeamRecord `json:"record"`
}

// EventDetailsResponse is the getEventDetails payload.
type EventDetailsResponse struct {
	Data struct {
		Event EventDetails `json:"event"`
	} `json:"data"`
}

type EventDetails struct {
	ID         string        `json:"id"`
	StartTime  string        `json:"startTime,omitempty"`
	BlockName  string        `json:"blockName,omitempty"`
	State      string        `json:"state,omitempty"`
	Type       string        `json:"type"`
	League     LeagueRef     `json:"league"`
	Tournament TournamentRef `json:"tournament"`
	Match      DetailMatch   `json:"match"`
}

type TournamentRef struct {
	ID string `json:"id"`
}

type DetailMatch struct {
	ID       string       `json:"id,omitempty"`
	Teams    []DetailTeam `json:"teams"`
	Strategy Strategy     `json:"strategy"`
	Games    []Game       `json:"games,omitempty"`
}

type DetailTeam struct {
	ID     string      `json:"id"`
	Slug   string      `json:"slug,omitempty"`
	Name   string      `json:"name"`
	Code   string      `json:"code"`
	Image  string      `json:"image"`
	Result *TeamResult `json:"result,omitempty"`
	Record *TeamRecord `json:"record,omitempty"`
}

type Game struct {
	ID     string     `json:"id"`
	Number int        `json:"number"`
	State  string     `json:"state"`
	Teams  []GameTeam `json:"teams"`
}

type GameTeam struct {
	ID     string      `json:"id"`
	Side   string      `json:"side"`
	Result *TeamResult `json:"result,omitempty"`
}

// TeamsResponse is the getTeams payload.
type TeamsResponse struct {
	Data struct {
		Teams []Team `json:"teams"`
	} `json:"data"`
}

type Team struct {
	ID               string      `json:"id"`
	Slug             string      `json:"slug"`
	Name             string      `json:"name"`
	Code             string      `json:"code"`
	Image            string      `json:"image"`
	AlternativeImage string      `json:"alternativeImage,omitempty"`
	BackgroundImage  string      `json:"backgroundImage,omitempty"`
	Status           string      `json:"status"`
	HomeLeague       *HomeLeague `json:"homeLeague,omitempty"`
	Players          []Player    `json:"players,omitempty"`
}

type HomeLeague struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

type Player struct {
	ID           string `json:"id"`
	SummonerName string `json:"summonerName"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Image        string `json:"image,omitempty"`
	Role         string `json:"role,omitempty"`
}

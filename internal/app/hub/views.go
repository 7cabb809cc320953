package hub

import (
	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/standings"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

type scheduleMeta struct {
	pages   lolapi.Pages
	updated string
}

// Pages carries the opaque tokens for the neighbouring schedule pages.
type Pages struct {
	Older string `json:"older,omitempty"`
	Newer string `json:"newer,omitempty"`
}

// LeaguesView is the payload of /api/leagues.
type LeaguesView struct {
	Leagues []leagues.League `json:"leagues"`
}

// ScheduleView is one schedule page split by state, plus the current live matches.
type ScheduleView struct {
	Upcoming  []matches.Match `json:"upcoming"`
	Completed []matches.Match `json:"completed"`
	Live      []matches.Match `json:"live"`
	Pages     Pages           `json:"pages"`
	UpdatedAt string          `json:"updatedAt"`
}

// LiveView is the payload of /api/live.
type LiveView struct {
	Live  []matches.Match `json:"live"`
	Count int             `json:"count"`
}

// Tab selects which half of the schedule the matches page lists.
type Tab string

const (
	TabSchedule Tab = "schedule"
	TabResults  Tab = "results"
)

// ParseTab treats anything other than "results" as the schedule tab.
func ParseTab(raw string) Tab {
	if Tab(raw) == TabResults {
		return TabResults
	}
	return TabSchedule
}

// MatchesView is the date-grouped matches page.
type MatchesView struct {
	Tab    Tab                 `json:"tab"`
	Groups []matches.DateGroup `json:"groups"`
}

// MatchDetailView is a match with its games and the history of both teams.
type MatchDetailView struct {
	matches.Detail
	matches.HeadToHead
	Team1Recent []matches.PastMatch `json:"team1RecentMatches"`
	Team2Recent []matches.PastMatch `json:"team2RecentMatches"`
}

// StandingsView holds one selected stage per requested tournament, in upstream order.
type StandingsView struct {
	Standings []standings.Stage `json:"standings"`
}

// EventsView is the tournament listing, filtered by region when one was asked for.
type EventsView struct {
	Regions        []string            `json:"regions"`
	SelectedRegion string              `json:"selectedRegion,omitempty"`
	Upcoming       []leagues.EventCard `json:"upcoming"`
	Completed      []leagues.EventCard `json:"completed"`
}

// UpcomingMatch is a match with a countdown label.
type UpcomingMatch struct {
	matches.Match
	ETA string `json:"eta"`
}

// EventDetailView is a league's featured tournament and its next matches.
type EventDetailView struct {
	League         leagues.League      `json:"league"`
	Tournament     *leagues.Tournament `json:"tournament"`
	Stage          string              `json:"stage"`
	DateRangeLabel string              `json:"dateRangeLabel"`
	LocationLabel  string              `json:"locationLabel"`
	Upcoming       []UpcomingMatch     `json:"upcomingMatches"`
}

// SidebarView feeds the right-hand rail: matches first, then league groupings.
type SidebarView struct {
	UpcomingLive  []matches.Match        `json:"upcomingLive"`
	Completed     []matches.Match        `json:"completed"`
	LiveCount     int                    `json:"liveCount"`
	LiveEvents    []leagues.SidebarEvent `json:"liveEvents"`
	OngoingEvents []leagues.SidebarEvent `json:"ongoingEvents"`
}

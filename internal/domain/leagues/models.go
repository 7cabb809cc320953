package leagues

import "time"

// League is the display shape of an upstream league.
type League struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Region   string `json:"region"`
	Flag     string `json:"flag"`
	Color    string `json:"color"`
	Priority int    `json:"priority"`
}

// Tournament is a dated run of a league. Zero dates mean upstream sent none or garbage.
type Tournament struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// HasDates reports whether both ends of the range parsed.
func (t Tournament) HasDates() bool {
	return !t.StartDate.IsZero() && !t.EndDate.IsZero()
}

// EventStatus places a tournament relative to now.
type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
)

// EventCard is a tournament rendered for the events listing.
type EventCard struct {
	ID          string      `json:"id"`
	LeagueID    string      `json:"leagueId"`
	LeagueSlug  string      `json:"leagueSlug"`
	Name        string      `json:"name"`
	LeagueName  string      `json:"leagueName"`
	LeagueImage string      `json:"leagueImage"`
	Region      string      `json:"region"`
	RegionLabel string      `json:"regionLabel"`
	Flag        string      `json:"flag"`
	Color       string      `json:"color"`
	Status      EventStatus `json:"status"`
	DateRange   string      `json:"dateRange"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
}

// SidebarEvent is one league's slice of the live or ongoing schedule.
type SidebarEvent struct {
	ID         string `json:"id"`
	LeagueID   string `json:"leagueId,omitempty"`
	LeagueSlug string `json:"leagueSlug"`
	League     string `json:"league"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	Region     string `json:"region"`
	Phase      string `json:"phase"`
	DateRange  string `json:"dateRange,omitempty"`
	MatchCount int    `json:"matchCount"`
	Live       bool   `json:"isLive"`
}

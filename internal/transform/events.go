package transform

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

const dateRangeTBD = "TBD"

// Tournament parses the date range; unparseable dates become zero.
func Tournament(raw lolapi.Tournament) leagues.Tournament {
	start, _ := timeutil.ParseDay(raw.StartDate)
	end, _ := timeutil.ParseDay(raw.EndDate)
	return leagues.Tournament{
		ID:        raw.ID,
		Slug:      raw.Slug,
		StartDate: start,
		EndDate:   end,
	}
}

// Tournaments transforms in input order.
func Tournaments(raw []lolapi.Tournament) []leagues.Tournament {
	out := make([]leagues.Tournament, 0, len(raw))
	for _, t := range raw {
		out = append(out, Tournament(t))
	}
	return out
}

// TournamentStatus places a tournament relative to now. The end date counts as a whole day;
// missing dates read as upcoming.
func TournamentStatus(t leagues.Tournament, now time.Time) leagues.EventStatus {
	if !t.HasDates() {
		return leagues.StatusUpcoming
	}
	if now.Before(t.StartDate) {
		return leagues.StatusUpcoming
	}
	if !now.Before(endOfDay(t.EndDate)) {
		return leagues.StatusCompleted
	}
	return leagues.StatusOngoing
}

// EndsOnOrAfter reports whether the tournament is still running at now.
func EndsOnOrAfter(t leagues.Tournament, now time.Time) bool {
	return !t.EndDate.IsZero() && now.Before(endOfDay(t.EndDate))
}

func endOfDay(day time.Time) time.Time {
	return day.Add(24 * time.Hour)
}

// ShortRange renders "Jan 2 – Feb 3", or TBD when either end is missing.
func ShortRange(t leagues.Tournament) string {
	if !t.HasDates() {
		return dateRangeTBD
	}
	return t.StartDate.Format(timeutil.ShortDayLayout) + " – " + t.EndDate.Format(timeutil.ShortDayLayout)
}

// LongRange renders "Jan 2, 2025 – Feb 3, 2025", or TBD.
func LongRange(t leagues.Tournament) string {
	if !t.HasDates() {
		return dateRangeTBD
	}
	return t.StartDate.Format(timeutil.LongDayLayout) + " – " + t.EndDate.Format(timeutil.LongDayLayout)
}

// NormalizeRegion trims and upper-cases a region for comparison.
func NormalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

// RegionLabel renders "NORTH AMERICA" as "North America".
func RegionLabel(region string) string {
	// Casers are stateful; one per call.
	return cases.Title(language.English).String(strings.ToLower(NormalizeRegion(region)))
}

// EventCard renders one tournament of a league for the events listing.
func EventCard(league leagues.League, t leagues.Tournament, now time.Time, p *Palette) leagues.EventCard {
	name := league.Name
	if t.Slug != "" {
		name = strings.TrimSpace(league.Name + " • " + strings.ReplaceAll(t.Slug, "-", " "))
	}
	region := NormalizeRegion(league.Region)
	return leagues.EventCard{
		ID:          t.ID,
		LeagueID:    league.ID,
		LeagueSlug:  league.Slug,
		Name:        name,
		LeagueName:  league.Name,
		LeagueImage: league.Image,
		Region:      region,
		RegionLabel: RegionLabel(region),
		Flag:        p.RegionFlag(region),
		Color:       p.LeagueColor(league.Slug),
		Status:      TournamentStatus(t, now),
		DateRange:   ShortRange(t),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
	}
}

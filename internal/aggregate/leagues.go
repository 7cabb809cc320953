package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

// ByPriority returns a copy ordered by ascending priority. Ties keep input order.
func ByPriority(ls []leagues.League) []leagues.League {
	out := append([]leagues.League(nil), ls...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// SearchLeagues keeps leagues whose name, slug, or region fuzzily contains the query, preserving order.
// An empty query keeps everything.
func SearchLeagues(ls []leagues.League, query string) []leagues.League {
	query = strings.TrimSpace(query)
	if query == "" {
		return ls
	}
	out := make([]leagues.League, 0, len(ls))
	for _, l := range ls {
		if fuzzy.MatchFold(query, l.Name) || fuzzy.MatchFold(query, l.Slug) || fuzzy.MatchFold(query, l.Region) {
			out = append(out, l)
		}
	}
	return out
}

// LeagueLabel renders a slug as a badge: "lco-split" becomes "LCO SPLIT".
func LeagueLabel(slug string) string {
	return strings.ToUpper(strings.ReplaceAll(slug, "-", " "))
}

// LeagueEvents groups matches per league slug, in first-seen order, into sidebar entries spanning
// the earliest to the latest start time of the group.
func LeagueEvents(ms []matches.Match, live bool, loc *time.Location) []leagues.SidebarEvent {
	prefix, defaultPhase := "ongoing-", "Season"
	if live {
		prefix, defaultPhase = "live-", "Live"
	}

	var order []string
	grouped := make(map[string][]matches.Match)
	for _, m := range ms {
		if _, ok := grouped[m.LeagueSlug]; !ok {
			order = append(order, m.LeagueSlug)
		}
		grouped[m.LeagueSlug] = append(grouped[m.LeagueSlug], m)
	}

	out := make([]leagues.SidebarEvent, 0, len(order))
	for _, slug := range order {
		group := grouped[slug]
		first := group[0]
		phase := first.BlockName
		if phase == "" {
			phase = defaultPhase
		}
		out = append(out, leagues.SidebarEvent{
			ID:         prefix + slug,
			LeagueID:   first.LeagueID,
			LeagueSlug: slug,
			League:     LeagueLabel(slug),
			Name:       first.LeagueName,
			Image:      first.LeagueImage,
			Region:     LeagueLabel(slug),
			Phase:      phase,
			DateRange:  startRange(group, loc),
			MatchCount: len(group),
			Live:       live,
		})
	}
	return out
}

func startRange(group []matches.Match, loc *time.Location) string {
	var earliest, latest time.Time
	for _, m := range group {
		start := m.Start()
		if start.IsZero() {
			continue
		}
		if earliest.IsZero() || start.Before(earliest) {
			earliest = start
		}
		if latest.IsZero() || start.After(latest) {
			latest = start
		}
	}
	if earliest.IsZero() {
		return ""
	}
	return timeutil.ShortDay(earliest, loc) + " - " + timeutil.ShortDay(latest, loc)
}

// ExcludeLeagues drops events whose league badge already appears in taken.
func ExcludeLeagues(events, taken []leagues.SidebarEvent) []leagues.SidebarEvent {
	seen := make(map[string]struct{}, len(taken))
	for _, e := range taken {
		seen[e.League] = struct{}{}
	}
	out := make([]leagues.SidebarEvent, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e.League]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CurrentTournament picks the first tournament still running at now, else the first one listed.
func CurrentTournament(ts []leagues.Tournament, now time.Time, running func(leagues.Tournament, time.Time) bool) (leagues.Tournament, bool) {
	for _, t := range ts {
		if running(t, now) {
			return t, true
		}
	}
	if len(ts) == 0 {
		return leagues.Tournament{}, false
	}
	return ts[0], true
}

// SplitEventCards separates cards into upcoming-or-ongoing, oldest start first, and completed,
// latest end first.
func SplitEventCards(cards []leagues.EventCard) (active, completed []leagues.EventCard) {
	active = []leagues.EventCard{}
	completed = []leagues.EventCard{}
	for _, c := range cards {
		if c.Status == leagues.StatusCompleted {
			completed = append(completed, c)
			continue
		}
		active = append(active, c)
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].StartDate.Before(active[j].StartDate) })
	sort.SliceStable(completed, func(i, j int) bool { return completed[i].EndDate.After(completed[j].EndDate) })
	return active, completed
}

// Regions lists the distinct non-empty card regions, sorted.
func Regions(cards []leagues.EventCard) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, c := range cards {
		if c.Region == "" {
			continue
		}
		if _, ok := seen[c.Region]; ok {
			continue
		}
		seen[c.Region] = struct{}{}
		out = append(out, c.Region)
	}
	sort.Strings(out)
	return out
}

// FilterRegion keeps cards in the normalized region; an empty region keeps all.
func FilterRegion(cards []leagues.EventCard, region string) []leagues.EventCard {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return cards
	}
	out := make([]leagues.EventCard, 0, len(cards))
	for _, c := range cards {
		if c.Region == region {
			out = append(out, c)
		}
	}
	return out
}

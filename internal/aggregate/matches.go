// Package aggregate works over collections of transformed entities. Every function is pure.
package aggregate

import (
	"sort"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

// RecentFormLimit caps the recent-form list.
const RecentFormLimit = 5

// GroupByDate buckets matches under their "FEBRUARY 26" label in loc. Groups keep first-seen
// label order and matches keep input order; nothing is re-sorted.
func GroupByDate(ms []matches.Match, loc *time.Location) []matches.DateGroup {
	var groups []matches.DateGroup
	index := make(map[string]int)

	for _, m := range ms {
		label := timeutil.DayLabel(m.Start(), loc)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, matches.DateGroup{Date: label})
		}
		groups[i].Matches = append(groups[i].Matches, m)
	}
	return groups
}

// Partition splits by state. Every match lands in exactly one bucket.
func Partition(ms []matches.Match) matches.Partition {
	p := matches.Partition{
		Upcoming:  []matches.Match{},
		Live:      []matches.Match{},
		Completed: []matches.Match{},
	}
	for _, m := range ms {
		switch m.State {
		case matches.StateInProgress:
			p.Live = append(p.Live, m)
		case matches.StateCompleted:
			p.Completed = append(p.Completed, m)
		default:
			p.Upcoming = append(p.Upcoming, m)
		}
	}
	return p
}

// HeadToHead counts completed meetings between two team codes, case-insensitively.
func HeadToHead(completed []matches.Match, code1, code2 string) matches.HeadToHead {
	var h matches.HeadToHead
	for _, m := range completed {
		if !m.Involves(code1) || !m.Involves(code2) {
			continue
		}
		h.Count++
		if own, opp, ok := m.Side(code1); ok && m.Won(own, opp) {
			h.Team1Wins++
		}
		if own, opp, ok := m.Side(code2); ok && m.Won(own, opp) {
			h.Team2Wins++
		}
	}
	return h
}

// RecentForm walks completed matches, expected newest first, and returns up to RecentFormLimit
// entries for the team in the same order. Matches without the team are skipped.
func RecentForm(completed []matches.Match, code string, loc *time.Location) []matches.PastMatch {
	out := make([]matches.PastMatch, 0, RecentFormLimit)
	for _, m := range completed {
		if len(out) == RecentFormLimit {
			break
		}
		own, opp, ok := m.Side(code)
		if !ok {
			continue
		}
		out = append(out, matches.PastMatch{
			ID:            m.ID,
			ScoreFor:      own.Score(),
			ScoreAgainst:  opp.Score(),
			OpponentCode:  opp.Code,
			OpponentName:  opp.Name,
			OpponentImage: opp.Image,
			Date:          timeutil.ShortDay(m.Start(), loc),
			Won:           m.Won(own, opp),
		})
	}
	return out
}

// SortByStart returns a copy ordered oldest first. Matches without a start go last and ties
// keep input order.
func SortByStart(ms []matches.Match) []matches.Match {
	return sortByStart(ms, time.Time.Before)
}

// SortByStartDesc returns a copy ordered newest first. Matches without a start go last and ties
// keep input order.
func SortByStartDesc(ms []matches.Match) []matches.Match {
	return sortByStart(ms, time.Time.After)
}

func sortByStart(ms []matches.Match, earlier func(a, b time.Time) bool) []matches.Match {
	out := append([]matches.Match(nil), ms...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Start(), out[j].Start()
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return earlier(a, b)
	})
	return out
}

// Completed keeps only completed matches.
func Completed(ms []matches.Match) []matches.Match {
	return filter(ms, func(m matches.Match) bool { return m.State == matches.StateCompleted })
}

// NotCompleted keeps upcoming and live matches.
func NotCompleted(ms []matches.Match) []matches.Match {
	return filter(ms, func(m matches.Match) bool { return m.State != matches.StateCompleted })
}

// FindMatch looks up a match by id.
func FindMatch(ms []matches.Match, id string) (matches.Match, bool) {
	for _, m := range ms {
		if m.ID == id {
			return m, true
		}
	}
	return matches.Match{}, false
}

// Take returns at most n leading elements.
func Take[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func filter(ms []matches.Match, keep func(matches.Match) bool) []matches.Match {
	out := make([]matches.Match, 0, len(ms))
	for _, m := range ms {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

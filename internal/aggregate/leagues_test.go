package aggregate

import (
	"testing"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
)

func TestByPriorityIsStable(t *testing.T) {
	ls := []leagues.League{
		{Slug: "b", Priority: 2},
		{Slug: "a", Priority: 1},
		{Slug: "c", Priority: 2},
	}
	got := ByPriority(ls)
	if got[0].Slug != "a" || got[1].Slug != "b" || got[2].Slug != "c" {
		t.Fatalf("unexpected order %v", got)
	}
	if ls[0].Slug != "b" {
		t.Fatal("expected input untouched")
	}
}

func TestSearchLeagues(t *testing.T) {
	ls := sampleLeagues()
	if got := SearchLeagues(ls, ""); len(got) != len(ls) {
		t.Fatalf("expected all leagues for empty query, got %d", len(got))
	}
	got := SearchLeagues(ls, "wrld")
	if len(got) != 1 || got[0].Slug != "worlds" {
		t.Fatalf("expected fuzzy match on worlds, got %v", got)
	}
	if got := SearchLeagues(ls, "europe"); len(got) != 1 || got[0].Slug != "lec" {
		t.Fatalf("expected region match, got %v", got)
	}
	if got := SearchLeagues(ls, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestLeagueLabel(t *testing.T) {
	if got := LeagueLabel("lco-split"); got != "LCO SPLIT" {
		t.Fatalf("expected LCO SPLIT, got %s", got)
	}
}

func leagueMatch(id, slug, block string, start time.Time) matches.Match {
	return matches.Match{ID: id, LeagueSlug: slug, LeagueID: slug + "-id", LeagueName: slug + " name", BlockName: block, StartTime: &start}
}

func TestLeagueEvents(t *testing.T) {
	ms := []matches.Match{
		leagueMatch("1", "lec", "Week 1", base.Add(48*time.Hour)),
		leagueMatch("2", "lck", "", base),
		leagueMatch("3", "lec", "Week 2", base),
	}

	events := LeagueEvents(ms, false, time.UTC)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	lec := events[0]
	if lec.ID != "ongoing-lec" || lec.League != "LEC" || lec.Phase != "Week 1" || lec.MatchCount != 2 || lec.Live {
		t.Fatalf("unexpected lec event %+v", lec)
	}
	if lec.DateRange != "Feb 26 - Feb 28" {
		t.Fatalf("expected full range, got %s", lec.DateRange)
	}
	if events[1].Phase != "Season" || events[1].LeagueID != "lck-id" {
		t.Fatalf("unexpected lck event %+v", events[1])
	}

	live := LeagueEvents(ms[1:2], true, time.UTC)
	if live[0].ID != "live-lck" || live[0].Phase != "Live" || !live[0].Live {
		t.Fatalf("unexpected live event %+v", live[0])
	}
}

func TestExcludeLeagues(t *testing.T) {
	live := []leagues.SidebarEvent{{League: "LCK"}}
	ongoing := []leagues.SidebarEvent{{League: "LCK"}, {League: "LEC"}}
	got := ExcludeLeagues(ongoing, live)
	if len(got) != 1 || got[0].League != "LEC" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestCurrentTournament(t *testing.T) {
	now := time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC)
	ended := leagues.Tournament{ID: "old", EndDate: now.Add(-48 * time.Hour)}
	running := leagues.Tournament{ID: "now", EndDate: now.Add(48 * time.Hour)}
	notEnded := func(t leagues.Tournament, at time.Time) bool { return !t.EndDate.Before(at) }

	got, ok := CurrentTournament([]leagues.Tournament{ended, running}, now, notEnded)
	if !ok || got.ID != "now" {
		t.Fatalf("expected running tournament, got %+v", got)
	}
	got, ok = CurrentTournament([]leagues.Tournament{ended}, now, notEnded)
	if !ok || got.ID != "old" {
		t.Fatalf("expected first tournament fallback, got %+v", got)
	}
	if _, ok := CurrentTournament(nil, now, notEnded); ok {
		t.Fatal("expected no tournament")
	}
}

func TestSplitEventCards(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	cards := []leagues.EventCard{
		{ID: "up-late", Status: leagues.StatusUpcoming, StartDate: day(20)},
		{ID: "done-early", Status: leagues.StatusCompleted, EndDate: day(2)},
		{ID: "ongoing", Status: leagues.StatusOngoing, StartDate: day(5)},
		{ID: "done-late", Status: leagues.StatusCompleted, EndDate: day(9)},
	}

	active, completed := SplitEventCards(cards)

	if len(active) != 2 || active[0].ID != "ongoing" || active[1].ID != "up-late" {
		t.Fatalf("unexpected active %v", active)
	}
	if len(completed) != 2 || completed[0].ID != "done-late" {
		t.Fatalf("unexpected completed %v", completed)
	}
}

func TestRegionsAndFilter(t *testing.T) {
	cards := []leagues.EventCard{
		{ID: "1", Region: "KR"},
		{ID: "2", Region: "EU"},
		{ID: "3", Region: "KR"},
		{ID: "4"},
	}
	regions := Regions(cards)
	if len(regions) != 2 || regions[0] != "EU" || regions[1] != "KR" {
		t.Fatalf("unexpected regions %v", regions)
	}
	if got := FilterRegion(cards, " kr "); len(got) != 2 {
		t.Fatalf("expected 2 KR cards, got %d", len(got))
	}
	if got := FilterRegion(cards, ""); len(got) != 4 {
		t.Fatalf("expected all cards, got %d", len(got))
	}
}

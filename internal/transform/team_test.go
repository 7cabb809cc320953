package transform

import (
	"testing"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

func TestTeamMapsRosterAndHomeLeague(t *testing.T) {
	raw := lolapi.Team{
		ID: "t1", Slug: "t1", Name: "T1", Code: "T1", AlternativeImage: "alt.png", Status: "active",
		HomeLeague: &lolapi.HomeLeague{Name: "LCK", Region: "KOREA"},
		Players: []lolapi.Player{
			{ID: "p1", SummonerName: "Faker", FirstName: "Sang-hyeok", LastName: "Lee", Role: "mid"},
		},
	}
	p := NewPalette()
	got := Team(raw, p)

	if got.Image != "alt.png" {
		t.Fatalf("expected alternative image fallback, got %q", got.Image)
	}
	if got.HomeLeague != "LCK" || got.Region != "KOREA" {
		t.Fatalf("unexpected home league %+v", got)
	}
	if len(got.Players) != 1 || got.Players[0].Handle != "Faker" || got.Players[0].Role != "mid" {
		t.Fatalf("unexpected roster %+v", got.Players)
	}
	if got.Color != p.TeamColor("T1") {
		t.Fatalf("expected team accent, got %s", got.Color)
	}
}

func TestTeamWithoutRosterHasEmptyPlayers(t *testing.T) {
	got := Team(lolapi.Team{ID: "x"}, NewPalette())
	if got.Players == nil || len(got.Players) != 0 {
		t.Fatalf("expected empty non-nil roster, got %+v", got.Players)
	}
}

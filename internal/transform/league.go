package transform

import (
	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

// League copies identity fields and derives color and flag from slug and region.
func League(raw lolapi.League, p *Palette) leagues.League {
	return leagues.League{
		ID:       raw.ID,
		Slug:     raw.Slug,
		Name:     raw.Name,
		Image:    raw.Image,
		Region:   raw.Region,
		Flag:     p.RegionFlag(raw.Region),
		Color:    p.LeagueColor(raw.Slug),
		Priority: raw.Priority,
	}
}

// Leagues transforms a leagues snapshot in input order.
func Leagues(raw []lolapi.League, p *Palette) []leagues.League {
	out := make([]leagues.League, 0, len(raw))
	for _, l := range raw {
		out = append(out, League(l, p))
	}
	return out
}

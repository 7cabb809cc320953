package transform

import (
	"github.com/preston-bernstein/esports-hub-service/internal/domain/players"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/teams"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

// Team maps a team profile with its roster.
func Team(raw lolapi.Team, p *Palette) teams.Team {
	t := teams.Team{
		ID:      raw.ID,
		Slug:    raw.Slug,
		Name:    raw.Name,
		Code:    raw.Code,
		Image:   raw.Image,
		Status:  raw.Status,
		Color:   p.TeamColor(raw.Code),
		Players: make([]players.Player, 0, len(raw.Players)),
	}
	if t.Image == "" {
		t.Image = raw.AlternativeImage
	}
	if raw.HomeLeague != nil {
		t.HomeLeague = raw.HomeLeague.Name
		t.Region = raw.HomeLeague.Region
	}
	for _, pl := range raw.Players {
		t.Players = append(t.Players, players.Player{
			ID:        pl.ID,
			Handle:    pl.SummonerName,
			FirstName: pl.FirstName,
			LastName:  pl.LastName,
			Role:      pl.Role,
			Image:     pl.Image,
		})
	}
	return t
}

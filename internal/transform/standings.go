package transform

import (
	"strings"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/standings"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

// StandingsSection flattens ranking groups into rows. Ordinals pass through untouched, ties included.
func StandingsSection(section lolapi.Section) []standings.Row {
	var rows []standings.Row
	for _, ranking := range section.Rankings {
		for _, team := range ranking.Teams {
			rows = append(rows, standings.Row{
				Rank:      ranking.Ordinal,
				TeamCode:  team.Code,
				TeamName:  team.Name,
				TeamImage: team.Image,
				Wins:      team.Record.Wins,
				Losses:    team.Record.Losses,
			})
		}
	}
	return rows
}

// SelectStage prefers a group or regular-season stage, falling back to the first. ok is false when there are none.
func SelectStage(stages []lolapi.Stage) (lolapi.Stage, bool) {
	for _, s := range stages {
		slug := strings.ToLower(s.Slug)
		if s.Type == "groups" || strings.Contains(slug, "regular") || strings.Contains(slug, "split") {
			return s, true
		}
	}
	if len(stages) == 0 {
		return lolapi.Stage{}, false
	}
	return stages[0], true
}

// Stage selects a stage and flattens all its sections into one list.
func Stage(stages []lolapi.Stage) standings.Stage {
	stage, ok := SelectStage(stages)
	if !ok {
		return standings.Stage{Name: standings.UnknownStage, Rows: []standings.Row{}}
	}
	rows := []standings.Row{}
	for _, section := range stage.Sections {
		rows = append(rows, StandingsSection(section)...)
	}
	return standings.Stage{Name: stage.Name, Rows: rows}
}

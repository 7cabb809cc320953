package transform

import (
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

// EventDetails maps an event-detail snapshot to a match with one game slot per possible game.
// Slots without upstream data are unstarted with no winner.
func EventDetails(raw lolapi.EventDetails, now time.Time, p *Palette) matches.Detail {
	var t1, t2 matches.Team
	var t1ID, t2ID string
	if len(raw.Match.Teams) > 0 {
		t1 = detailTeam(raw.Match.Teams[0])
		t1ID = raw.Match.Teams[0].ID
	}
	if len(raw.Match.Teams) > 1 {
		t2 = detailTeam(raw.Match.Teams[1])
		t2ID = raw.Match.Teams[1].ID
	}

	id := raw.ID
	if id == "" {
		id = raw.Match.ID
	}
	state := matches.ParseState(raw.State)
	start, ok := timeutil.ParseInstant(raw.StartTime)

	m := matches.Match{
		ID:           id,
		StartTime:    startOrNil(start, ok),
		RelativeTime: relativeOrTBD(start, ok, now, state),
		BlockName:    raw.BlockName,
		LeagueName:   raw.League.Name,
		LeagueID:     raw.League.ID,
		LeagueSlug:   raw.League.Slug,
		LeagueImage:  raw.League.Image,
		LeagueColor:  p.LeagueColor(raw.League.Slug),
		Team1:        t1,
		Team2:        t2,
		BestOf:       raw.Match.Strategy.Count,
		State:        state,
		IsLive:       state == matches.StateInProgress,
	}

	return matches.Detail{
		Match:        m,
		TournamentID: raw.Tournament.ID,
		Region:       raw.League.Region,
		Games:        gameSlots(raw.Match.Games, raw.Match.Strategy.Count, t1ID, t2ID),
	}
}

func detailTeam(raw lolapi.DetailTeam) matches.Team {
	return buildTeam(raw.Code, raw.Name, raw.Image, raw.Result, raw.Record)
}

func gameSlots(games []lolapi.Game, bestOf int, team1ID, team2ID string) []matches.GameResult {
	byNumber := make(map[int]lolapi.Game, len(games))
	slots := bestOf
	for _, g := range games {
		byNumber[g.Number] = g
		if g.Number > slots {
			slots = g.Number
		}
	}

	out := make([]matches.GameResult, 0, slots)
	for n := 1; n <= slots; n++ {
		g, ok := byNumber[n]
		if !ok {
			out = append(out, matches.GameResult{Number: n, State: matches.StateUnstarted})
			continue
		}
		out = append(out, matches.GameResult{
			Number: n,
			State:  matches.ParseState(g.State),
			Winner: gameWinner(g, team1ID, team2ID),
		})
	}
	return out
}

// gameWinner trusts a per-game win outcome only; games without one stay undecided.
func gameWinner(g lolapi.Game, team1ID, team2ID string) matches.Winner {
	for _, gt := range g.Teams {
		if gt.Result == nil || matches.Outcome(gt.Result.Outcome) != matches.OutcomeWin {
			continue
		}
		switch {
		case gt.ID != "" && gt.ID == team1ID:
			return matches.WinnerTeam1
		case gt.ID != "" && gt.ID == team2ID:
			return matches.WinnerTeam2
		}
	}
	return matches.WinnerNone
}

package transform

import (
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

const eventTypeMatch = "match"

// IsMatchEvent reports whether a schedule entry is a two-team match rather than a show.
func IsMatchEvent(raw lolapi.Event) bool {
	return raw.Type == eventTypeMatch && raw.Match != nil && len(raw.Match.Teams) == 2
}

// ScheduleEvent maps one schedule or live entry. Team order is kept as sent.
func ScheduleEvent(raw lolapi.Event, now time.Time, p *Palette) matches.Match {
	var (
		t1, t2 matches.Team
		bestOf int
		id     = raw.ID
	)
	if raw.Match != nil {
		if len(raw.Match.Teams) > 0 {
			t1 = matchTeam(raw.Match.Teams[0])
		}
		if len(raw.Match.Teams) > 1 {
			t2 = matchTeam(raw.Match.Teams[1])
		}
		bestOf = raw.Match.Strategy.Count
		if id == "" {
			id = raw.Match.ID
		}
	}

	state := matches.ParseState(raw.State)
	start, ok := timeutil.ParseInstant(raw.StartTime)

	return matches.Match{
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
		BestOf:       bestOf,
		State:        state,
		IsLive:       state == matches.StateInProgress,
	}
}

// ScheduleEvents keeps only match events and transforms them in input order.
func ScheduleEvents(raw []lolapi.Event, now time.Time, p *Palette) []matches.Match {
	out := make([]matches.Match, 0, len(raw))
	for _, ev := range raw {
		if !IsMatchEvent(ev) {
			continue
		}
		out = append(out, ScheduleEvent(ev, now, p))
	}
	return out
}

func startOrNil(start time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	return &start
}

func relativeOrTBD(start time.Time, ok bool, now time.Time, state matches.State) string {
	if !ok && state != matches.StateInProgress {
		return "TBD"
	}
	return FormatRelativeTime(start, now, state)
}

func matchTeam(raw lolapi.MatchTeam) matches.Team {
	return buildTeam(raw.Code, raw.Name, raw.Image, raw.Result, raw.Record)
}

func buildTeam(code, name, image string, result *lolapi.TeamResult, record *lolapi.TeamRecord) matches.Team {
	t := matches.Team{Code: code, Name: name, Image: image}
	if record != nil {
		wins, losses := record.Wins, record.Losses
		t.Wins = &wins
		t.Losses = &losses
	}
	if result != nil {
		gameWins := result.GameWins
		t.GameWins = &gameWins
		t.Outcome = outcome(result.Outcome)
	}
	return t
}

func outcome(raw string) matches.Outcome {
	switch matches.Outcome(raw) {
	case matches.OutcomeWin:
		return matches.OutcomeWin
	case matches.OutcomeLoss:
		return matches.OutcomeLoss
	default:
		return matches.OutcomeUnknown
	}
}

package testutil

import (
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
)

// SampleLeague is the league attached to events built by MatchEvent.
var SampleLeague = lolapi.LeagueRef{ID: "lck-id", Slug: "lck", Name: "LCK"}

// MatchEvent builds a best-of-three schedule event between two team codes.
func MatchEvent(id, state string, start time.Time, team1, team2 string) lolapi.Event {
	return lolapi.Event{
		ID:        id,
		StartTime: start.Format(time.RFC3339),
		BlockName: "Week 1",
		State:     state,
		Type:      "match",
		League:    SampleLeague,
		Match: &lolapi.Match{
			ID:       id,
			Teams:    []lolapi.MatchTeam{{Code: team1, Name: team1}, {Code: team2, Name: team2}},
			Strategy: lolapi.Strategy{Type: "bestOf", Count: 3},
		},
	}
}

// LiveResponse wraps events in a getLive payload.
func LiveResponse(events ...lolapi.Event) lolapi.LiveResponse {
	var resp lolapi.LiveResponse
	resp.Data.Schedule.Events = events
	return resp
}

// ScheduleResponse wraps events in a getSchedule payload.
func ScheduleResponse(events ...lolapi.Event) lolapi.ScheduleResponse {
	var resp lolapi.ScheduleResponse
	resp.Data.Schedule.Events = events
	return resp
}

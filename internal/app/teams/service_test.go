package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/esports-hub-service/internal/app"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
	"github.com/preston-bernstein/esports-hub-service/internal/teststubs"
)

func teamsResponse(items ...lolapi.Team) lolapi.TeamsResponse {
	var resp lolapi.TeamsResponse
	resp.Data.Teams = items
	return resp
}

func TestTeamBySlugReturnsProfile(t *testing.T) {
	src := &teststubs.StubSource{TeamsResp: map[string]lolapi.TeamsResponse{
		"t1": teamsResponse(
			lolapi.Team{Slug: "t1-academy", Code: "T1A", Name: "T1 Academy"},
			lolapi.Team{
				Slug:       "t1",
				Code:       "T1",
				Name:       "T1",
				HomeLeague: &lolapi.HomeLeague{Name: "LCK", Region: "KOREA"},
				Players:    []lolapi.Player{{ID: "p1", SummonerName: "Faker", Role: "mid"}},
			},
		),
	}}
	svc := NewService(src, nil)

	team, err := svc.TeamBySlug(context.Background(), " T1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.Code != "T1" || team.HomeLeague != "LCK" {
		t.Fatalf("expected exact slug match, got %+v", team)
	}
	if len(team.Players) != 1 || team.Players[0].Handle != "Faker" {
		t.Fatalf("expected roster, got %+v", team.Players)
	}
	if team.Color == "" {
		t.Fatalf("expected palette color")
	}
}

func TestTeamBySlugSingleResultFallback(t *testing.T) {
	src := &teststubs.StubSource{TeamsResp: map[string]lolapi.TeamsResponse{
		"g2": teamsResponse(lolapi.Team{Slug: "g2-esports", Code: "G2"}),
	}}
	team, err := NewService(src, nil).TeamBySlug(context.Background(), "g2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.Code != "G2" {
		t.Fatalf("expected single result to be used, got %+v", team)
	}
}

func TestTeamBySlugNotFound(t *testing.T) {
	src := &teststubs.StubSource{}
	_, err := NewService(src, nil).TeamBySlug(context.Background(), "nobody")
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamBySlugRequiresSlug(t *testing.T) {
	src := &teststubs.StubSource{}
	_, err := NewService(src, nil).TeamBySlug(context.Background(), "  ")
	if !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if src.Calls.Load() != 0 {
		t.Fatalf("expected no upstream call for empty slug")
	}
}

func TestTeamBySlugWrapsSourceErrors(t *testing.T) {
	src := &teststubs.StubSource{Err: providers.ErrSourceUnavailable}
	_, err := NewService(src, nil).TeamBySlug(context.Background(), "t1")
	if !errors.Is(err, providers.ErrSourceUnavailable) {
		t.Fatalf("expected source error to be wrapped, got %v", err)
	}
}

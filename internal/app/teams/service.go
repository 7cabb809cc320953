package teams

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/esports-hub-service/internal/app"
	"github.com/preston-bernstein/esports-hub-service/internal/domain/teams"
	"github.com/preston-bernstein/esports-hub-service/internal/lolapi"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
	"github.com/preston-bernstein/esports-hub-service/internal/transform"
)

// Service looks up team profiles through a Source.
type Service struct {
	source  providers.Source
	palette *transform.Palette
}

// NewService constructs a Service. A nil palette gets the standard tables.
func NewService(source providers.Source, palette *transform.Palette) *Service {
	if palette == nil {
		palette = transform.NewPalette()
	}
	return &Service{source: source, palette: palette}
}

// TeamBySlug returns a team profile with its active roster.
func (s *Service) TeamBySlug(ctx context.Context, slug string) (teams.Team, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return teams.Team{}, fmt.Errorf("team slug: %w", app.ErrInvalidInput)
	}
	raw, err := s.source.Teams(ctx, slug)
	if err != nil {
		return teams.Team{}, fmt.Errorf("fetch team %s: %w", slug, err)
	}
	match, ok := pick(raw.Data.Teams, slug)
	if !ok {
		return teams.Team{}, fmt.Errorf("team %s: %w", slug, app.ErrNotFound)
	}
	return transform.Team(match, s.palette), nil
}

// pick prefers the exact slug; upstream may return related teams alongside it.
func pick(items []lolapi.Team, slug string) (lolapi.Team, bool) {
	for _, t := range items {
		if strings.EqualFold(t.Slug, slug) {
			return t, true
		}
	}
	if len(items) == 1 {
		return items[0], true
	}
	return lolapi.Team{}, false
}

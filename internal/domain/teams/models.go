package teams

import "github.com/preston-bernstein/esports-hub-service/internal/domain/players"

// Team is the profile shape of an esports organisation.
type Team struct {
	ID         string           `json:"id"`
	Slug       string           `json:"slug"`
	Name       string           `json:"name"`
	Code       string           `json:"code"`
	Image      string           `json:"image"`
	Status     string           `json:"status"`
	Color      string           `json:"color"`
	HomeLeague string           `json:"homeLeague,omitempty"`
	Region     string           `json:"region,omitempty"`
	Players    []players.Player `json:"players"`
}

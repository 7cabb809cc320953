package players

import "strings"

// Player is a rostered player as listed on a team profile.
type Player struct {
	ID        string `json:"id"`
	Handle    string `json:"handle"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	Image     string `json:"image,omitempty"`
}

// FullName joins first and last name, skipping blanks.
func (p Player) FullName() string {
	return strings.TrimSpace(strings.Join([]string{p.FirstName, p.LastName}, " "))
}

package transform

import "strings"

const (
	defaultLeagueColor = "#C89B3C"
	defaultRegionFlag  = "🌍"
)

// Palette holds the display lookup tables. Build it once with NewPalette and share the pointer;
// it has no mutators so concurrent readers are safe.
type Palette struct {
	leagueColors map[string]string
	regionFlags  map[string]string
	teamColors   []string
}

// NewPalette returns the standard league color, region flag, and team accent tables.
func NewPalette() *Palette {
	return &Palette{
		leagueColors: map[string]string{
			"lck":    "#0BC4E3",
			"lpl":    "#E84057",
			"lec":    "#1e90ff",
			"lcs":    "#9b59b6",
			"cblol":  "#1FBF6E",
			"ljl":    "#f97316",
			"lco":    "#f59e0b",
			"msi":    "#C89B3C",
			"worlds": "#C89B3C",
		},
		regionFlags: map[string]string{
			"KOREA":         "🇰🇷",
			"CHINA":         "🇨🇳",
			"EUROPE":        "🇪🇺",
			"NORTH AMERICA": "🇺🇸",
			"BRAZIL":        "🇧🇷",
			"JAPAN":         "🇯🇵",
			"OCEANIA":       "🇦🇺",
			"INTERNATIONAL": "🌍",
			"LAS":           "🌎",
			"LAN":           "🌎",
			"TURKEY":        "🇹🇷",
			"CIS":           "🌐",
			"VIETNAM":       "🇻🇳",
			"SEA":           "🌏",
		},
		teamColors: []string{
			"#E84057", "#0BC4E3", "#1FBF6E", "#9b59b6",
			"#f97316", "#C89B3C", "#1e90ff", "#f59e0b",
		},
	}
}

// LeagueColor looks up a league accent by slug, case-insensitively.
func (p *Palette) LeagueColor(slug string) string {
	if p == nil {
		return defaultLeagueColor
	}
	if c, ok := p.leagueColors[strings.ToLower(strings.TrimSpace(slug))]; ok {
		return c
	}
	return defaultLeagueColor
}

// RegionFlag looks up a region's emoji flag, case-insensitively.
func (p *Palette) RegionFlag(region string) string {
	if p == nil {
		return defaultRegionFlag
	}
	if f, ok := p.regionFlags[strings.ToUpper(strings.TrimSpace(region))]; ok {
		return f
	}
	return defaultRegionFlag
}

// TeamColor picks a stable accent for a team code from the team palette.
func (p *Palette) TeamColor(code string) string {
	if p == nil || len(p.teamColors) == 0 {
		return defaultLeagueColor
	}
	// 31x string hash; the shift wraps at 32 bits, the running sum does not.
	var hash int64
	for _, r := range code {
		hash = int64(r) + int64(int32(hash)<<5) - hash
	}
	if hash < 0 {
		hash = -hash
	}
	return p.teamColors[hash%int64(len(p.teamColors))]
}

package aggregate

import (
	"strings"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/leagues"
)

// DefaultRegion is returned when no region can be resolved.
const DefaultRegion = "INT"

// LeagueRef is a partial league reference as carried by schedule events. Any field may be empty.
type LeagueRef struct {
	ID   string
	Slug string
	Name string
}

// LeagueIndex resolves partial references against a leagues snapshot. It is read-only once built.
type LeagueIndex struct {
	byID   map[string]leagues.League
	bySlug map[string]leagues.League
	byName map[string]leagues.League
}

// NewLeagueIndex indexes leagues by id, lower-cased slug, and lower-cased name. Earlier entries win.
func NewLeagueIndex(ls []leagues.League) *LeagueIndex {
	idx := &LeagueIndex{
		byID:   make(map[string]leagues.League, len(ls)),
		bySlug: make(map[string]leagues.League, len(ls)),
		byName: make(map[string]leagues.League, len(ls)),
	}
	for _, l := range ls {
		putOnce(idx.byID, l.ID, l)
		putOnce(idx.bySlug, fold(l.Slug), l)
		putOnce(idx.byName, fold(l.Name), l)
	}
	return idx
}

func putOnce(m map[string]leagues.League, key string, l leagues.League) {
	if key == "" {
		return
	}
	if _, ok := m[key]; !ok {
		m[key] = l
	}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lookup tries id, then slug, then name.
func (idx *LeagueIndex) Lookup(ref LeagueRef) (leagues.League, bool) {
	v := idx.resolve(ref, func(l leagues.League) string { return l.ID })
	if v == "" {
		return leagues.League{}, false
	}
	return idx.byID[v], true
}

// ResolveID returns the canonical league id, or fallback.
func (idx *LeagueIndex) ResolveID(ref LeagueRef, fallback string) string {
	return orDefault(idx.resolve(ref, func(l leagues.League) string { return l.ID }), fallback)
}

// ResolveImage returns the league image, or fallback.
func (idx *LeagueIndex) ResolveImage(ref LeagueRef, fallback string) string {
	return orDefault(idx.resolve(ref, func(l leagues.League) string { return l.Image }), fallback)
}

// ResolveRegion returns the short region code, or fallback, or DefaultRegion when fallback is empty.
func (idx *LeagueIndex) ResolveRegion(ref LeagueRef, fallback string) string {
	region := idx.resolve(ref, func(l leagues.League) string {
		if strings.TrimSpace(l.Region) == "" {
			return ""
		}
		return RegionCode(l.Region)
	})
	return orDefault(orDefault(region, fallback), DefaultRegion)
}

// resolve walks id, slug, name and returns the first non-empty picked value.
func (idx *LeagueIndex) resolve(ref LeagueRef, pick func(leagues.League) string) string {
	if idx == nil {
		return ""
	}
	if ref.ID != "" {
		if l, ok := idx.byID[ref.ID]; ok {
			if v := pick(l); v != "" {
				return v
			}
		}
	}
	if key := fold(ref.Slug); key != "" {
		if l, ok := idx.bySlug[key]; ok {
			if v := pick(l); v != "" {
				return v
			}
		}
	}
	if key := fold(ref.Name); key != "" {
		if l, ok := idx.byName[key]; ok {
			if v := pick(l); v != "" {
				return v
			}
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

var regionCodes = map[string]string{
	"KOREA":         "KR",
	"CHINA":         "CN",
	"EUROPE":        "EU",
	"NORTH AMERICA": "NA",
	"BRAZIL":        "BR",
	"JAPAN":         "JP",
	"OCEANIA":       "OCE",
	"INTERNATIONAL": "INT",
}

// RegionCode shortens known region names; other values come back upper-cased, empty as DefaultRegion.
func RegionCode(region string) string {
	normalized := strings.ToUpper(strings.TrimSpace(region))
	if code, ok := regionCodes[normalized]; ok {
		return code
	}
	return orDefault(normalized, DefaultRegion)
}

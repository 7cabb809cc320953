package timeutil

import (
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Display layouts, all en-US.
const (
	MonthDayLayout = "January 2"
	ShortDayLayout = "Jan 2"
	LongDayLayout  = "Jan 2, 2006"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseInstant parses an upstream ISO 8601 timestamp. ok is false for empty or malformed input.
func ParseInstant(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDay accepts either a bare date or a full timestamp.
func ParseDay(value string) (time.Time, bool) {
	if t, err := ParseDate(strings.TrimSpace(value)); err == nil {
		return t, true
	}
	return ParseInstant(value)
}

// LabelTBD stands in for a missing date.
const LabelTBD = "TBD"

// DayLabel renders the upper-cased "FEBRUARY 26" grouping label in loc, or TBD for the zero time.
func DayLabel(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return LabelTBD
	}
	return strings.ToUpper(In(t, loc).Format(MonthDayLayout))
}

// ShortDay renders "Feb 26" in loc, or TBD for the zero time.
func ShortDay(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return LabelTBD
	}
	return In(t, loc).Format(ShortDayLayout)
}

// In converts t to loc, treating a nil location as UTC.
func In(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc)
}

// ResolveTimezone returns a location for a tz string, or nil if invalid.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}

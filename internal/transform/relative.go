package transform

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
)

// FormatRelativeTime renders a match's start relative to now: "Live", "Just ended", "2d ago", "1h 30m", "3d 4h".
// It reads no clock; callers pass now.
func FormatRelativeTime(start, now time.Time, state matches.State) string {
	if state == matches.StateInProgress {
		return "Live"
	}

	diff := absDuration(start.Sub(now))

	if state == matches.StateCompleted {
		if diff < time.Hour {
			return "Just ended"
		}
		hours := int(diff / time.Hour)
		if days := hours / 24; days > 0 {
			return fmt.Sprintf("%dd ago", days)
		}
		return fmt.Sprintf("%dh ago", hours)
	}

	minutes := int(diff / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	case hours%24 == 0:
		return fmt.Sprintf("%dd", days)
	default:
		return fmt.Sprintf("%dd %dh", days, hours%24)
	}
}

// FormatETA renders the countdown shown on event pages: "2d 5h" or "5h". Past starts clamp to zero.
func FormatETA(start, now time.Time) string {
	diff := start.Sub(now)
	if diff < 0 {
		diff = 0
	}
	hours := int(diff / time.Hour)
	if days := hours / 24; days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours%24)
	}
	return fmt.Sprintf("%dh", hours)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

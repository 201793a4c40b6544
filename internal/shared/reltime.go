package shared

import (
	"fmt"
	"math"
	"time"
)

// RelativeDays renders the whole-day distance between t and now.
// A nil or zero time renders as the empty string.
func RelativeDays(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "in 1 day"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == -1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

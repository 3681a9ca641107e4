package normalize

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is used for timestamps older than a week.
const DateLayout = "1/2/2006"

// timestampLayouts lists the formats RelativeTime accepts, tried in order.
var timestampLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC850,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses raw with the first matching accepted layout.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// RelativeTime renders raw relative to now ("3 minutes ago", "a day ago").
// Anything older than a week is rendered as a calendar date. Input that
// cannot be parsed is returned unchanged.
func RelativeTime(raw string, now time.Time) string {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return raw
	}

	sec := int64(now.Sub(t) / time.Second)
	mins := sec / 60
	hours := mins / 60
	days := hours / 24

	switch {
	case sec < 60:
		if sec <= 1 {
			return "just now"
		}
		return fmt.Sprintf("%d seconds ago", sec)
	case mins < 60:
		if mins == 1 {
			return "a minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case hours < 24:
		if hours == 1 {
			return "an hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case days < 7:
		if days == 1 {
			return "a day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format(DateLayout)
	}
}

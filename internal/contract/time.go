package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/averykuo/ghpulse/schema"
)

// relativeTimeRe captures "N [units] ago",
// e.g. "2 years ago", "3 months ago", "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 weeks ago" into a time.Time in
// the past relative to now. Only day-or-coarser units make sense for calendar
// date ranges, so sub-day units are rejected.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "year" or "month")
	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -value*7), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	default:
		// Should be caught by the regex, but good for safety
		return time.Time{}, fmt.Errorf("unsupported time unit: %s", unit)
	}
}

// ParseDateInput resolves a user-provided date string into a calendar date.
// Accepted forms, tried in order: YYYY-MM-DD, absolute ISO8601, "N [units] ago".
func ParseDateInput(s string, now time.Time) (schema.CalDate, error) {
	s = strings.TrimSpace(s)

	if d, err := schema.ParseCalDate(s); err == nil {
		return d, nil
	}

	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return schema.DateOf(t), nil
	}

	t, err := ParseRelativeTime(s, now)
	if err != nil {
		return schema.CalDate{}, err
	}
	return schema.DateOf(t), nil
}

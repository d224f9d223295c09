package catalog

import (
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ParseYear extracts the year from a YYYY-MM-DD catalog date.
// Returns 0 for an empty or malformed date.
func ParseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y <= 0 {
		return 0
	}
	return y
}

// ParseDate parses a YYYY-MM-DD catalog date. A bare year is accepted.
// Returns the zero time when the date cannot be parsed, so undated items sort last.
func ParseDate(date string) time.Time {
	if t, err := time.Parse(dateLayout, date); err == nil {
		return t
	}
	if y := ParseYear(date); y > 0 && len(date) == 4 {
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

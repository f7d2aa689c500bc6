package helpers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// eventTimeLayouts are the formats the API has been seen to send
var eventTimeLayouts = []string{
	time.RFC3339,
	http.TimeFormat,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseEventTime parses an API timestamp, reporting false if no known layout matches
func ParseEventTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate formats a time.Time as "Jan 2, 2006"
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateTime formats a time.Time as "Jan 2, 2006 3:04 PM"
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

// FormatEventTime formats an API timestamp, falling back to the raw value
func FormatEventTime(s string) string {
	t, ok := ParseEventTime(s)
	if !ok {
		return s
	}
	return FormatDateTime(t)
}

// FormatEventWindow formats start and end, dropping the end date when the
// event finishes on the same day (e.g., "Jan 2, 2006 6:00 PM - 8:00 PM")
func FormatEventWindow(start, end string) string {
	s, okStart := ParseEventTime(start)
	e, okEnd := ParseEventTime(end)

	switch {
	case okStart && okEnd && s.Year() == e.Year() && s.YearDay() == e.YearDay():
		return fmt.Sprintf("%s - %s", FormatDateTime(s), e.Format("3:04 PM"))
	case okStart && okEnd:
		return fmt.Sprintf("%s - %s", FormatDateTime(s), FormatDateTime(e))
	default:
		return FormatEventTime(start)
	}
}

// SpotsLeft describes remaining capacity (e.g., "3 of 20 spots left")
func SpotsLeft(capacity, filled int64) string {
	if capacity <= 0 {
		return "Open"
	}
	left := capacity - filled
	if left <= 0 {
		return "Full"
	}
	return fmt.Sprintf("%d of %d spots left", left, capacity)
}

// Pluralize returns "1 member" / "3 members"
func Pluralize(n int64, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

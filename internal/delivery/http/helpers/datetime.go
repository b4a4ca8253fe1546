package helpers

import (
	"fmt"
	"time"
)

// Accepted layouts for event dates in request payloads, most specific first.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseEventDate parses an event timestamp from a request payload. It accepts
// RFC3339 and a few calendar-form shorthands; layouts without a zone are
// interpreted in UTC.
func ParseEventDate(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", value)
}

// ParseDay parses a calendar-day query parameter (YYYY-MM-DD).
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date, expected YYYY-MM-DD: %q", value)
	}
	return t, nil
}

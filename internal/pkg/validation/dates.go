package validation

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical date format for API payloads
const DateFormat = "2006-01-02"

// acceptedDateFormats are the input layouts NormalizeDate tries in order.
// Clients submit dates in several regional conventions; everything is
// canonicalized to DateFormat server-side.
var acceptedDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// NormalizeDate parses a date string in any accepted format and returns it
// as a time.Time truncated to the date. Returns an error when no layout
// matches.
func NormalizeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range acceptedDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

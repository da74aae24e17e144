package qr

import "time"

// dateFormats are tried in priority order; the first full match wins.
var dateFormats = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
}

// NormalizeDate parses an ambiguous date string into a calendar date.
// An empty string or a string matching no supported format yields ok=false;
// that is an expected outcome for the caller, not an error.
func NormalizeDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if d, err := time.Parse(format, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// ISODate is the canonical serialization for calendar dates.
const ISODate = "2006-01-02"

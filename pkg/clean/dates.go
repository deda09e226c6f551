// pkg/clean/dates.go
package clean

import (
	"regexp"
	"time"
)

// isoDate is the canonical rendering for every date column after cleaning.
const isoDate = "2006-01-02"

// spacedWordedDate matches dates written as "<year> <word-month> <day>",
// e.g. "2020 October 05".
var spacedWordedDate = regexp.MustCompile(`^(\d{4}) ([A-Za-z]+) (\d{2})$`)

// dateFormats is the format list tried, in order, when parsing the
// hand-entered date columns. Worded-month shapes come after the
// normalizer has rewritten spaced dates into dashed ones.
var dateFormats = []string{
	isoDate,
	"2006-January-02",
	"2006 January 02",
	"02 January 2006",
	"January 2006 02",
	"2006/01/02",
}

// NormalizeWordedDate rewrites a "<year> <word-month> <day>" token into
// its dash-separated equivalent ("2020 October 05" -> "2020-October-05").
// Dash- or slash-separated tokens already carry their own separators and
// pass through untouched, as does anything that doesn't match. No
// calendar validation happens here; that is the parser's job.
func NormalizeWordedDate(s string) string {
	if m := spacedWordedDate.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	return s
}

// ParseFlexibleDate tries each known date format and reports whether
// any of them matched.
func ParseFlexibleDate(s string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseISODate parses a strict YYYY-MM-DD calendar date.
func ParseISODate(s string) (time.Time, bool) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// timeOfDayFormats are tried when parsing a bare time-of-day cell. Any
// date component present is discarded by the caller.
var timeOfDayFormats = []string{
	"15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseTimeOfDay extracts an HH:MM:SS time from a cell, ignoring any
// date component.
func ParseTimeOfDay(s string) (string, bool) {
	for _, format := range timeOfDayFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.Format("15:04:05"), true
		}
	}
	return "", false
}

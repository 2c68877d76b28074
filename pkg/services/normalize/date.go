package normalize

import (
	"strconv"
	"strings"
	"time"
)

// excelEpoch is the serial-date origin of the originating spreadsheet
// format. Day 1 is 1900-01-01, but the format counts the phantom
// 1900-02-29, so the epoch sits two days before: serial N maps to
// 1899-12-30 + N days.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// isoLayouts are tried first; they are unambiguous.
var isoLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// textualLayouts carry the month as a name, which also makes them
// unambiguous.
var textualLayouts = []string{
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate interprets a raw cell as a calendar date. It accepts ISO text,
// textual-month locale forms, ambiguous numeric locale forms (day-first
// preferred when both readings are valid dates), and spreadsheet serial
// numbers. Time-of-day is discarded. The second return is false when no
// rule applies.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}
	for _, layout := range textualLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}

	if t, ok := parseSerial(s); ok {
		return t, true
	}
	return parseLocale(s)
}

// parseSerial converts a spreadsheet serial day count. Fractional parts
// (time-of-day) are truncated. Values below 10000 are rejected: they
// would shadow bare years and stray quantities, and correspond to dates
// before 1927 that no sales sheet carries.
func parseSerial(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	days := int(f)
	if days < 10000 || days > 200000 {
		return time.Time{}, false
	}
	return excelEpoch.AddDate(0, 0, days), true
}

// parseLocale handles three-part numeric forms: d/m/y, m/d/y and their
// dash and dot variants. Components above 12 disambiguate on their own;
// when both readings produce valid dates, day-first wins. Two-digit years
// are read as 20xx.
func parseLocale(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	year := nums[2]
	if len(parts[2]) == 2 {
		year += 2000
	}

	if t, ok := makeDate(year, nums[1], nums[0]); ok { // day-first
		return t, true
	}
	if t, ok := makeDate(year, nums[0], nums[1]); ok { // month-first
		return t, true
	}
	return time.Time{}, false
}

// makeDate builds a date and rejects component overflow, which time.Date
// would otherwise silently normalize.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1000 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical DD/MM/YYYY layout every source date is normalized to.
	DateLayout = "02/01/2006"

	// InvalidDate replaces a source date that is not a real calendar date.
	// Events carrying it are kept but never match a year.
	InvalidDate = "Invalid date"
)

// DateOrder describes the field order of a source date.
type DateOrder int

const (
	MonthDayYear DateOrder = iota
	YearMonthDay
)

var digitsRe = regexp.MustCompile(`\d+`)

// NormalizeDate converts a source date into DD/MM/YYYY. Separators are
// ignored, so "01 15 1990", "01/15/1990" and "01-15-1990" are the same
// month-day-year date. A single eight digit run is read as compact YYYYMMDD
// when order is YearMonthDay.
func NormalizeDate(raw string, order DateOrder) string {
	tokens := digitsRe.FindAllString(raw, -1)
	if order == YearMonthDay && len(tokens) == 1 && len(tokens[0]) == 8 {
		t := tokens[0]
		tokens = []string{t[:4], t[4:6], t[6:]}
	}
	if len(tokens) < 3 {
		return InvalidDate
	}

	var year, month, day string
	switch order {
	case MonthDayYear:
		month, day, year = tokens[0], tokens[1], tokens[2]
	case YearMonthDay:
		year, month, day = tokens[0], tokens[1], tokens[2]
	default:
		return InvalidDate
	}

	t, ok := calendarDate(year, month, day)
	if !ok {
		return InvalidDate
	}
	return t.Format(DateLayout)
}

// YearDate converts a bare year into the first of January of that year.
func YearDate(raw string) string {
	tokens := digitsRe.FindAllString(raw, 1)
	if len(tokens) == 0 {
		return InvalidDate
	}
	t, ok := calendarDate(tokens[0], "1", "1")
	if !ok {
		return InvalidDate
	}
	return t.Format(DateLayout)
}

// JoinDate slash-joins separate day, month and year fields as they are,
// without padding or calendar validation.
func JoinDate(day, month, year string) string {
	return day + "/" + month + "/" + year
}

// YearOf returns the year of a DD/MM/YYYY date. Dates that do not split into
// three numeric fields, or that name a day the calendar does not have, report
// false.
func YearOf(date string) (int, bool) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return 0, false
	}
	t, ok := calendarDate(parts[2], parts[1], parts[0])
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// calendarDate validates the three fields and rejects overflowing values such
// as 31/02 instead of letting time.Date roll them over.
func calendarDate(year, month, day string) (time.Time, bool) {
	y, errY := parseYear(year)
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	d, errD := strconv.Atoi(strings.TrimSpace(day))
	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(m) {
		return time.Time{}, false
	}
	return t, true
}

// parseYear expands two-digit years the usual way: 69-99 are 19xx, 00-68 are 20xx.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if len(s) == 2 {
		if y > 68 {
			return 1900 + y, nil
		}
		return 2000 + y, nil
	}
	return y, nil
}

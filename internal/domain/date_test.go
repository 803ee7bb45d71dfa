package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		order    DateOrder
		expected string
	}{
		{"month day year with spaces", "01 15 1990", MonthDayYear, "15/01/1990"},
		{"month day year with slashes", "1/5/1990", MonthDayYear, "05/01/1990"},
		{"two digit year 19xx", "07 04 76", MonthDayYear, "04/07/1976"},
		{"two digit year 20xx", "07 04 05", MonthDayYear, "04/07/2005"},
		{"iso prefix", "1990-01-15", YearMonthDay, "15/01/1990"},
		{"year month day with spaces", "1990 01 15", YearMonthDay, "15/01/1990"},
		{"compact digits", "19900115", YearMonthDay, "15/01/1990"},
		{"leap day", "2000 02 29", YearMonthDay, "29/02/2000"},
		{"not a leap year", "1900 02 29", YearMonthDay, InvalidDate},
		{"month out of range", "13 01 1990", MonthDayYear, InvalidDate},
		{"day zero", "1990 01 00", YearMonthDay, InvalidDate},
		{"too few fields", "1990 01", YearMonthDay, InvalidDate},
		{"empty", "", MonthDayYear, InvalidDate},
		{"letters only", "unknown", YearMonthDay, InvalidDate},
		{"compact digits need year-first order", "19900115", MonthDayYear, InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDate(tt.raw, tt.order))
		})
	}
}

func TestYearDate(t *testing.T) {
	assert.Equal(t, "01/01/1992", YearDate("1992"))
	assert.Equal(t, "01/01/1992", YearDate(" 1992 "))
	assert.Equal(t, InvalidDate, YearDate(""))
	assert.Equal(t, InvalidDate, YearDate("n/a"))
}

func TestJoinDate(t *testing.T) {
	assert.Equal(t, "3/5/1902", JoinDate("3", "5", "1902"))
	assert.Equal(t, "//1902", JoinDate("", "", "1902"))
}

func TestYearOf(t *testing.T) {
	tests := []struct {
		date string
		year int
		ok   bool
	}{
		{"15/01/1990", 1990, true},
		{"3/5/1902", 1902, true},
		{"01/01/2018", 2018, true},
		{"31/02/1990", 0, false},
		{"//1902", 0, false},
		{"3/5/", 0, false},
		{InvalidDate, 0, false},
		{"1990", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			year, ok := YearOf(tt.date)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.year, year)
		})
	}
}

func TestNormalizeDate_RoundTripsThroughYearOf(t *testing.T) {
	for _, raw := range []string{"01 15 1990", "12 31 1918", "02 29 2016"} {
		year, ok := YearOf(NormalizeDate(raw, MonthDayYear))
		assert.True(t, ok, raw)
		assert.NotZero(t, year, raw)
	}
}

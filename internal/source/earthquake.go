package source

import (
	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/scale"
)

// NormalizeEarthquakes maps earthquakes.csv rows. The earthquake fit is taken
// from this file's Magnitude column.
func NormalizeEarthquakes(rows []Row) Result {
	fit := fitColumn(domain.Earthquake, rows, "Magnitude")
	b := newBuilder(domain.Earthquake, RecentEarthquakes.File, len(rows))

	for _, r := range rows {
		mag, okS := parseNumber(r.Get("Magnitude"))
		lon, okLon := parseNumber(r.Get("Longitude"))
		lat, okLat := parseNumber(r.Get("Latitude"))
		date := domain.NormalizeDate(r.Get("Date"), domain.MonthDayYear)
		b.add(okS && okLon && okLat, date, r.Get("Time"), fit.Apply(mag), lon, lat)
	}
	return b.result(fit)
}

// NormalizeOlderEarthquakes maps olderEarthquakes.csv rows with the fit from
// the recent file. The combined time column is split by position: the first
// ten characters are the date, characters 11-16 the clock time.
func NormalizeOlderEarthquakes(rows []Row, fit scale.Fit) Result {
	b := newBuilder(domain.Earthquake, OlderEarthquakes.File, len(rows))

	for _, r := range rows {
		mag, okS := parseNumber(r.Get("mag"))
		lon, okLon := parseNumber(r.Get("longitude"))
		lat, okLat := parseNumber(r.Get("latitude"))
		combined := r.Get("time")
		date := domain.NormalizeDate(substring(combined, 0, 10), domain.YearMonthDay)
		clock := substring(combined, 11, 16)
		b.add(okS && okLon && okLat, date, clock, fit.Apply(mag), lon, lat)
	}
	return b.result(fit)
}

// MergeEarthquakes puts the older events first so the category reads
// chronologically.
func MergeEarthquakes(recent, older Result) Result {
	return merge(older, recent, recent.Fit)
}

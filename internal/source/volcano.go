package source

import (
	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/scale"
)

// NormalizeEruptions maps volcan.csv rows. TOTAL_DEATHS is the severity
// proxy; most eruptions have no recorded count, so a missing or unparseable
// value falls back to the smallest count in the file instead of dropping the
// row.
func NormalizeEruptions(rows []Row) Result {
	minDeaths, maxDeaths, known := columnExtent(rows, "TOTAL_DEATHS")
	var fit scale.Fit
	if known {
		fit = scale.ForCategory(domain.VolcanicEruption, minDeaths, maxDeaths)
	}
	b := newBuilder(domain.VolcanicEruption, Eruptions.File, len(rows))

	for _, r := range rows {
		deaths, okS := parseNumber(r.Get("TOTAL_DEATHS"))
		if !okS {
			deaths, okS = minDeaths, known
		}
		lon, okLon := parseNumber(r.Get("Longitude"))
		lat, okLat := parseNumber(r.Get("Latitude"))
		date := domain.JoinDate(r.Get("Day"), r.Get("Month"), r.Get("Year"))
		b.add(okS && okLon && okLat, date, "", fit.Apply(deaths), lon, lat)
	}
	return b.result(fit)
}

package source

import "github.com/couchcryptid/disaster-map/internal/domain"

// NormalizeTsunamis maps tsunami.csv rows. Arrival hour and minute are joined
// with a colon exactly as recorded, so "7" and "5" become "7:5".
func NormalizeTsunamis(rows []Row) Result {
	fit := fitColumn(domain.Tsunami, rows, "TS_INTENSI")
	b := newBuilder(domain.Tsunami, Tsunamis.File, len(rows))

	for _, r := range rows {
		intensity, okS := parseNumber(r.Get("TS_INTENSI"))
		lon, okLon := parseNumber(r.Get("LONGITUDE"))
		lat, okLat := parseNumber(r.Get("LATITUDE"))
		date := domain.NormalizeDate(r.Get("DATE_STRIN"), domain.YearMonthDay)
		b.add(okS && okLon && okLat, date, arrivalTime(r.Get("ARR_HOUR"), r.Get("ARR_MIN")), fit.Apply(intensity), lon, lat)
	}
	return b.result(fit)
}

func arrivalTime(hour, minute string) string {
	if hour == "" && minute == "" {
		return ""
	}
	return hour + ":" + minute
}

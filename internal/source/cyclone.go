package source

import (
	"regexp"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/domain"
)

// trackRe matches one coordinate in a storm track string, with an optional
// hemisphere letter, e.g. "25.0N" or "-80.5".
var trackRe = regexp.MustCompile(`([+-]?\d+(?:\.\d+)?)\s*([NSEWnsew])?`)

// NormalizeStorms maps atlantic_pacific_storms.csv rows.
func NormalizeStorms(rows []Row, opts Options) Result {
	fit := fitColumn(domain.Cyclone, rows, "Maximum Wind")
	b := newBuilder(domain.Cyclone, Storms.File, len(rows))

	for _, r := range rows {
		wind, okS := parseNumber(r.Get("Maximum Wind"))
		lon, okLon := parseHemisphere(r.Get("Longitude"), opts)
		lat, okLat := parseHemisphere(r.Get("Latitude"), opts)
		date := domain.NormalizeDate(r.Get("Date"), domain.YearMonthDay)
		b.add(okS && okLon && okLat, date, stormTime(r.Get("Time")), fit.Apply(wind), lon, lat)
	}
	return b.result(fit)
}

// NormalizeStormTracks maps american_winds.csv rows. Every row is one storm
// whose track string holds alternating latitude, longitude numbers; one event
// is emitted per pair, all sharing the row's wind speed and year. The fit is
// computed from this file alone.
func NormalizeStormTracks(rows []Row, opts Options) Result {
	fit := fitColumn(domain.Cyclone, rows, "max_wind_kt")
	b := newBuilder(domain.Cyclone, StormTracks.File, len(rows))

	for _, r := range rows {
		wind, okS := parseNumber(r.Get("max_wind_kt"))
		date := domain.YearDate(r.Get("year"))

		matches := trackRe.FindAllStringSubmatch(r.Get("track"), -1)
		if len(matches) == 0 {
			b.add(false, date, "", 0, 0, 0)
			continue
		}
		for i := 0; i < len(matches); i += 2 {
			lat, okLat := trackCoordinate(matches[i], opts)
			if i+1 >= len(matches) {
				b.add(false, date, "", 0, 0, lat)
				continue
			}
			lon, okLon := trackCoordinate(matches[i+1], opts)
			b.add(okS && okLat && okLon, date, "", fit.Apply(wind), lon, lat)
		}
	}
	return b.result(fit)
}

// MergeCyclones appends the track events after the storm events. The track
// file's fit replaces the storm file's; storm events keep the severities
// they were scaled with.
func MergeCyclones(storms, tracks Result) Result {
	return merge(storms, tracks, tracks.Fit)
}

// stormTime turns HHMM digits into a clock string: four digits split after
// two, three digits after one, anything else is midnight.
func stormTime(raw string) string {
	switch len(raw) {
	case 4:
		return raw[:2] + ":" + raw[2:]
	case 3:
		return raw[:1] + ":" + raw[1:]
	default:
		return "00:00"
	}
}

// parseHemisphere parses a coordinate carrying a hemisphere suffix. Any single
// trailing N/S/E/W is removed. In the default mode the sign is left alone, so
// "80.0W" is 80 and "12.0S" is 12. In signed mode S/W negate the value.
func parseHemisphere(raw string, opts Options) (float64, bool) {
	s := strings.TrimSpace(raw)
	sign := 1.0
	if n := len(s); n > 0 {
		switch strings.ToUpper(s[n-1:]) {
		case "S", "W":
			if opts.SignedHemispheres {
				sign = -1
			}
			s = s[:n-1]
		case "N", "E":
			s = s[:n-1]
		}
	}
	v, ok := parseNumber(s)
	return sign * v, ok
}

func trackCoordinate(match []string, opts Options) (float64, bool) {
	v, ok := parseNumber(match[1])
	if !ok {
		return 0, false
	}
	if opts.SignedHemispheres {
		switch strings.ToUpper(match[2]) {
		case "S", "W":
			v = -v
		}
	}
	return v, true
}

package source

import "github.com/couchcryptid/disaster-map/internal/domain"

// Spec describes one snapshot file: where it lives, which category it feeds,
// and the columns its adapter reads.
type Spec struct {
	Name     string
	File     string
	Category domain.Category
	Columns  []string
}

var (
	RecentEarthquakes = Spec{
		Name:     "earthquakes",
		File:     "earthquakes.csv",
		Category: domain.Earthquake,
		Columns:  []string{"Magnitude", "Longitude", "Latitude", "Date", "Time"},
	}
	OlderEarthquakes = Spec{
		Name:     "older_earthquakes",
		File:     "olderEarthquakes.csv",
		Category: domain.Earthquake,
		Columns:  []string{"mag", "longitude", "latitude", "time"},
	}
	Tsunamis = Spec{
		Name:     "tsunami",
		File:     "tsunami.csv",
		Category: domain.Tsunami,
		Columns:  []string{"TS_INTENSI", "LONGITUDE", "LATITUDE", "DATE_STRIN", "ARR_HOUR", "ARR_MIN"},
	}
	Storms = Spec{
		Name:     "storms",
		File:     "atlantic_pacific_storms.csv",
		Category: domain.Cyclone,
		Columns:  []string{"Maximum Wind", "Longitude", "Latitude", "Date", "Time"},
	}
	StormTracks = Spec{
		Name:     "storm_tracks",
		File:     "american_winds.csv",
		Category: domain.Cyclone,
		Columns:  []string{"max_wind_kt", "year", "track"},
	}
	Eruptions = Spec{
		Name:     "eruptions",
		File:     "volcan.csv",
		Category: domain.VolcanicEruption,
		Columns:  []string{"TOTAL_DEATHS", "Longitude", "Latitude", "Day", "Month", "Year"},
	}
)

// Specs returns every snapshot file in load order.
func Specs() []Spec {
	return []Spec{RecentEarthquakes, OlderEarthquakes, Tsunamis, Storms, StormTracks, Eruptions}
}

// SpecsFor returns the files that feed category c, primary file first.
func SpecsFor(c domain.Category) []Spec {
	var out []Spec
	for _, s := range Specs() {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// Missing returns the required columns absent from header, in Columns order.
func (s Spec) Missing(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range s.Columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Normalize runs the adapters for category c over its files' rows, given in
// SpecsFor order, and merges them.
func Normalize(c domain.Category, tables [][]Row, opts Options) Result {
	if len(tables) < len(SpecsFor(c)) {
		return Result{Category: c}
	}
	switch c {
	case domain.Earthquake:
		recent := NormalizeEarthquakes(tables[0])
		older := NormalizeOlderEarthquakes(tables[1], recent.Fit)
		return MergeEarthquakes(recent, older)
	case domain.Tsunami:
		return NormalizeTsunamis(tables[0])
	case domain.Cyclone:
		storms := NormalizeStorms(tables[0], opts)
		tracks := NormalizeStormTracks(tables[1], opts)
		return MergeCyclones(storms, tracks)
	case domain.VolcanicEruption:
		return NormalizeEruptions(tables[0])
	}
	return Result{Category: c}
}

package source

import (
	"math"
	"testing"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEarthquakes_Scenario(t *testing.T) {
	rows := []Row{
		{"Magnitude": "4.0", "Longitude": "0", "Latitude": "0", "Date": "01 01 1990", "Time": "00:00"},
		{"Magnitude": "5.0", "Longitude": "10.0", "Latitude": "20.0", "Date": "01 15 1990", "Time": "12:00"},
		{"Magnitude": "6.0", "Longitude": "0", "Latitude": "0", "Date": "12 31 1990", "Time": "23:59"},
	}

	res := NormalizeEarthquakes(rows)

	require.Len(t, res.Events, 3)
	assert.Equal(t, scale.Linear(4, 6, 3, 10), res.Fit)

	ev := res.Events[1]
	assert.Equal(t, domain.Earthquake, ev.Category)
	assert.Equal(t, "brown", ev.Color)
	assert.InDelta(t, 6.5, ev.Severity, 1e-9)
	assert.Equal(t, "15/01/1990", ev.Date)
	assert.Equal(t, "12:00", ev.Time)
	assert.InDelta(t, 10.0, ev.Longitude, 1e-9)
	assert.InDelta(t, 20.0, ev.Latitude, 1e-9)
	assert.Equal(t, "earthquakes.csv", ev.Source)
}

func TestNormalizeEarthquakes_DropsUnparseableRows(t *testing.T) {
	rows := []Row{
		{"Magnitude": "5.5", "Longitude": "1", "Latitude": "2", "Date": "06 01 2000"},
		{"Magnitude": "", "Longitude": "1", "Latitude": "2", "Date": "06 01 2000"},
		{"Magnitude": "5.9", "Longitude": "east", "Latitude": "2", "Date": "06 01 2000"},
		{"Magnitude": "6.1", "Longitude": "1", "Latitude": "NaN", "Date": "06 01 2000"},
		{"Magnitude": "7.0", "Longitude": "1", "Latitude": "2", "Date": "garbage"},
	}

	res := NormalizeEarthquakes(rows)

	require.Len(t, res.Events, 2)
	assert.Equal(t, 3, res.Rejected())
	assert.Equal(t, []Stats{{File: "earthquakes.csv", Rows: 5, Events: 2, Rejected: 3}}, res.Stats)
	// fit spans every parseable magnitude, including rows dropped for bad coordinates
	assert.Equal(t, 5.5, res.Fit.Min)
	assert.Equal(t, 7.0, res.Fit.Max)
	// unparseable dates do not drop the row
	assert.Equal(t, domain.InvalidDate, res.Events[1].Date)
}

func TestNormalizeOlderEarthquakes(t *testing.T) {
	fit := scale.Linear(4, 6, 3, 10)
	rows := []Row{
		{"mag": "5", "longitude": "-120.5", "latitude": "35.25", "time": "1931-08-16T11:40:21.000Z"},
		{"mag": "x", "longitude": "1", "latitude": "1", "time": "1931-08-16T11:40:21.000Z"},
		{"mag": "4.5", "longitude": "1", "latitude": "1", "time": "1931-08-16"},
	}

	res := NormalizeOlderEarthquakes(rows, fit)

	require.Len(t, res.Events, 2)
	assert.Equal(t, "16/08/1931", res.Events[0].Date)
	assert.Equal(t, "11:40", res.Events[0].Time)
	assert.InDelta(t, 6.5, res.Events[0].Severity, 1e-9)
	assert.Equal(t, "olderEarthquakes.csv", res.Events[0].Source)
	assert.Empty(t, res.Events[1].Time)
	assert.Equal(t, 1, res.Rejected())
}

func TestNormalizeOlderEarthquakes_BelowRecentDomainIsRejected(t *testing.T) {
	// 1.0 on a [4,6]→[3,10] fit scales to -7.5, which is not a valid severity.
	res := NormalizeOlderEarthquakes([]Row{
		{"mag": "1.0", "longitude": "1", "latitude": "1", "time": "1931-08-16T11:40"},
	}, scale.Linear(4, 6, 3, 10))

	assert.Empty(t, res.Events)
	assert.Equal(t, 1, res.Rejected())
}

func TestMergeEarthquakes_OlderFirst(t *testing.T) {
	recent := NormalizeEarthquakes([]Row{
		{"Magnitude": "6", "Longitude": "1", "Latitude": "1", "Date": "01 01 2000"},
	})
	older := NormalizeOlderEarthquakes([]Row{
		{"mag": "6", "longitude": "2", "latitude": "2", "time": "1950-01-01T00:00"},
	}, recent.Fit)

	merged := MergeEarthquakes(recent, older)

	require.Len(t, merged.Events, 2)
	assert.Equal(t, "01/01/1950", merged.Events[0].Date)
	assert.Equal(t, "01/01/2000", merged.Events[1].Date)
	assert.Equal(t, recent.Fit, merged.Fit)
	require.Len(t, merged.Stats, 2)
	assert.Equal(t, "olderEarthquakes.csv", merged.Stats[0].File)
}

func TestNormalizeTsunamis(t *testing.T) {
	rows := []Row{
		{"TS_INTENSI": "1", "LONGITUDE": "142.4", "LATITUDE": "38.3", "DATE_STRIN": "2011 03 11", "ARR_HOUR": "7", "ARR_MIN": "5"},
		{"TS_INTENSI": "3", "LONGITUDE": "95.9", "LATITUDE": "3.3", "DATE_STRIN": "2004/12/26", "ARR_HOUR": "", "ARR_MIN": ""},
		{"TS_INTENSI": "", "LONGITUDE": "0", "LATITUDE": "0", "DATE_STRIN": "2004 12 26"},
	}

	res := NormalizeTsunamis(rows)

	require.Len(t, res.Events, 2)
	assert.Equal(t, scale.Linear(1, 3, 3, 10), res.Fit)
	assert.Equal(t, "11/03/2011", res.Events[0].Date)
	assert.Equal(t, "7:5", res.Events[0].Time)
	assert.InDelta(t, 3.0, res.Events[0].Severity, 1e-9)
	assert.Equal(t, "blue", res.Events[0].Color)
	assert.Equal(t, "26/12/2004", res.Events[1].Date)
	assert.Empty(t, res.Events[1].Time)
	assert.InDelta(t, 10.0, res.Events[1].Severity, 1e-9)
}

func TestStormTime(t *testing.T) {
	tests := map[string]string{
		"1230":  "12:30",
		"0600":  "06:00",
		"930":   "9:30",
		"0":     "00:00",
		"":      "00:00",
		"12345": "00:00",
	}
	for raw, want := range tests {
		assert.Equal(t, want, stormTime(raw), raw)
	}
}

func TestNormalizeStorms(t *testing.T) {
	rows := []Row{
		{"Maximum Wind": "30", "Longitude": "80.0W", "Latitude": "25.0N", "Date": "19920824", "Time": "1200"},
		{"Maximum Wind": "150", "Longitude": "81.5W", "Latitude": "26.5N", "Date": "19920825", "Time": "600"},
		{"Maximum Wind": "-999", "Longitude": "82.0W", "Latitude": "12.0S", "Date": "19920826", "Time": "0"},
	}

	t.Run("preserve hemisphere sign", func(t *testing.T) {
		res := NormalizeStorms(rows, Options{})

		require.Len(t, res.Events, 3)
		assert.Zero(t, res.Rejected())
		assert.InDelta(t, 80.0, res.Events[0].Longitude, 1e-9)
		assert.InDelta(t, 25.0, res.Events[0].Latitude, 1e-9)
		assert.Equal(t, "24/08/1992", res.Events[0].Date)
		assert.Equal(t, "12:00", res.Events[0].Time)
		assert.Equal(t, "6:00", res.Events[1].Time)
		assert.Equal(t, "grey", res.Events[0].Color)
		// -999 sentinel widens the fit domain
		assert.Equal(t, -999.0, res.Fit.Min)
		assert.InDelta(t, 12.0, res.Events[2].Latitude, 1e-9, "S suffix is stripped without negating")
	})

	t.Run("signed hemispheres", func(t *testing.T) {
		res := NormalizeStorms(rows, Options{SignedHemispheres: true})

		require.Len(t, res.Events, 3)
		assert.Zero(t, res.Rejected())
		assert.InDelta(t, -80.0, res.Events[0].Longitude, 1e-9)
		assert.InDelta(t, 25.0, res.Events[0].Latitude, 1e-9)
		assert.InDelta(t, -12.0, res.Events[2].Latitude, 1e-9)
		assert.InDelta(t, 1.0, res.Events[2].Severity, 1e-9)
	})
}

func TestNormalizeStorms_AnyHemisphereSuffix(t *testing.T) {
	rows := []Row{
		{"Maximum Wind": "40", "Longitude": "170.0E", "Latitude": "25.0N", "Date": "19500101", "Time": "0"},
		{"Maximum Wind": "45", "Longitude": "80.0W", "Latitude": "12.0S", "Date": "19500212", "Time": "1200"},
		{"Maximum Wind": "50", "Longitude": "80.0w", "Latitude": "25.0n", "Date": "19500301", "Time": "600"},
	}

	res := NormalizeStorms(rows, Options{})

	require.Len(t, res.Events, 3)
	assert.Zero(t, res.Rejected())
	assert.InDelta(t, 170.0, res.Events[0].Longitude, 1e-9)
	assert.InDelta(t, 12.0, res.Events[1].Latitude, 1e-9)
	assert.InDelta(t, 80.0, res.Events[2].Longitude, 1e-9)
	assert.InDelta(t, 25.0, res.Events[2].Latitude, 1e-9)
}

func TestParseHemisphere(t *testing.T) {
	tests := []struct {
		raw    string
		signed bool
		want   float64
		ok     bool
	}{
		{"80.0W", false, 80, true},
		{"12.0S", false, 12, true},
		{"170.0E", false, 170, true},
		{" 25.0N ", false, 25, true},
		{"42", false, 42, true},
		{"12.0S", true, -12, true},
		{"80.0w", true, -80, true},
		{"170.0E", true, 170, true},
		{"25.0NW", false, 0, false},
		{"W", false, 0, false},
		{"", false, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseHemisphere(tt.raw, Options{SignedHemispheres: tt.signed})
		assert.Equal(t, tt.ok, ok, tt.raw)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.raw)
		}
	}
}

func TestNormalizeStormTracks_Scenario(t *testing.T) {
	rows := []Row{
		{"max_wind_kt": "100", "year": "1992", "track": "25.0N 80.0W 26.0N 81.0W"},
		{"max_wind_kt": "50", "year": "1993", "track": "30.0N 90.0W"},
	}

	t.Run("preserve hemisphere sign", func(t *testing.T) {
		res := NormalizeStormTracks(rows, Options{})

		require.Len(t, res.Events, 3)
		first, second := res.Events[0], res.Events[1]
		assert.InDelta(t, 25.0, first.Latitude, 1e-9)
		assert.InDelta(t, 80.0, first.Longitude, 1e-9)
		assert.InDelta(t, 26.0, second.Latitude, 1e-9)
		assert.InDelta(t, 81.0, second.Longitude, 1e-9)

		assert.Equal(t, first.Severity, second.Severity)
		assert.InDelta(t, 5.0, first.Severity, 1e-9)
		assert.Equal(t, "01/01/1992", first.Date)
		assert.Equal(t, "01/01/1992", second.Date)
		assert.Empty(t, first.Time)
		assert.InDelta(t, 1.0, res.Events[2].Severity, 1e-9)
	})

	t.Run("signed hemispheres", func(t *testing.T) {
		res := NormalizeStormTracks(rows, Options{SignedHemispheres: true})

		require.Len(t, res.Events, 3)
		assert.InDelta(t, 25.0, res.Events[0].Latitude, 1e-9)
		assert.InDelta(t, -80.0, res.Events[0].Longitude, 1e-9)
		assert.InDelta(t, -81.0, res.Events[1].Longitude, 1e-9)
	})
}

func TestNormalizeStormTracks_UnpairedAndEmpty(t *testing.T) {
	rows := []Row{
		{"max_wind_kt": "80", "year": "2001", "track": "10 20 30"},
		{"max_wind_kt": "90", "year": "2001", "track": ""},
		{"max_wind_kt": "n/a", "year": "2001", "track": "10 20"},
	}

	res := NormalizeStormTracks(rows, Options{})

	require.Len(t, res.Events, 1)
	assert.InDelta(t, 10.0, res.Events[0].Latitude, 1e-9)
	assert.InDelta(t, 20.0, res.Events[0].Longitude, 1e-9)
	assert.Equal(t, 3, res.Rejected())
}

func TestMergeCyclones_TrackFitWins(t *testing.T) {
	storms := NormalizeStorms([]Row{
		{"Maximum Wind": "20", "Longitude": "80W", "Latitude": "25N", "Date": "19920824", "Time": "1200"},
		{"Maximum Wind": "40", "Longitude": "80W", "Latitude": "25N", "Date": "19920824", "Time": "1200"},
	}, Options{})
	tracks := NormalizeStormTracks([]Row{
		{"max_wind_kt": "100", "year": "1992", "track": "25 80"},
		{"max_wind_kt": "200", "year": "1992", "track": "25 80"},
	}, Options{})

	merged := MergeCyclones(storms, tracks)

	require.Len(t, merged.Events, 4)
	assert.Equal(t, scale.Linear(100, 200, 1, 5), merged.Fit)
	// storm events keep the severities from their own fit
	assert.InDelta(t, 5.0, merged.Events[1].Severity, 1e-9)
	assert.Equal(t, "american_winds.csv", merged.Events[3].Source)
}

func TestNormalizeEruptions(t *testing.T) {
	rows := []Row{
		{"TOTAL_DEATHS": "0", "Longitude": "14.4", "Latitude": "40.8", "Day": "3", "Month": "5", "Year": "1902"},
		{"TOTAL_DEATHS": "", "Longitude": "-61.2", "Latitude": "14.8", "Day": "8", "Month": "5", "Year": "1902"},
		{"TOTAL_DEATHS": "29000", "Longitude": "-61.2", "Latitude": "14.8", "Day": "", "Month": "", "Year": "1902"},
		{"TOTAL_DEATHS": "5", "Longitude": "", "Latitude": "14.8", "Day": "1", "Month": "1", "Year": "1950"},
	}

	res := NormalizeEruptions(rows)

	require.Len(t, res.Events, 3)
	assert.Equal(t, scale.Pow(0, 29000, 3, 5, 0.2), res.Fit)

	missing := res.Events[1]
	assert.Equal(t, res.Fit.Apply(0), missing.Severity)
	assert.InDelta(t, 3.0, missing.Severity, 1e-9)
	assert.Equal(t, "8/5/1902", missing.Date)
	assert.Empty(t, missing.Time)
	assert.Equal(t, "red", missing.Color)
	assert.Equal(t, domain.VolcanicEruption, missing.Category)

	assert.Equal(t, "//1902", res.Events[2].Date)
	assert.InDelta(t, 5.0, res.Events[2].Severity, 1e-9)
	assert.Equal(t, 1, res.Rejected())
}

func TestNormalizeEruptions_NoKnownDeaths(t *testing.T) {
	res := NormalizeEruptions([]Row{
		{"TOTAL_DEATHS": "", "Longitude": "1", "Latitude": "1", "Day": "1", "Month": "1", "Year": "1950"},
	})
	assert.Empty(t, res.Events)
	assert.False(t, res.Fit.Fitted())
}

func TestNormalize_ProducesOneEventPerValidRow(t *testing.T) {
	tables := [][]Row{{
		{"TS_INTENSI": "2", "LONGITUDE": "1", "LATITUDE": "1", "DATE_STRIN": "2000 01 01"},
		{"TS_INTENSI": "4", "LONGITUDE": "2", "LATITUDE": "2", "DATE_STRIN": "2000 01 02"},
		{"TS_INTENSI": "bad", "LONGITUDE": "2", "LATITUDE": "2", "DATE_STRIN": "2000 01 02"},
	}}

	res := Normalize(domain.Tsunami, tables, Options{})
	assert.Len(t, res.Events, 2)
	for _, ev := range res.Events {
		assert.False(t, math.IsNaN(ev.Severity))
		assert.GreaterOrEqual(t, ev.Severity, 0.0)
	}
}

func TestNormalize_MissingTables(t *testing.T) {
	res := Normalize(domain.Earthquake, [][]Row{{}}, Options{})
	assert.Empty(t, res.Events)
	assert.Equal(t, domain.Earthquake, res.Category)
}

func TestSpec_Missing(t *testing.T) {
	assert.Empty(t, Tsunamis.Missing(Tsunamis.Columns))
	assert.Equal(t, []string{"track"}, StormTracks.Missing([]string{"max_wind_kt", "year"}))
}

func TestSpecsFor(t *testing.T) {
	eq := SpecsFor(domain.Earthquake)
	require.Len(t, eq, 2)
	assert.Equal(t, "earthquakes.csv", eq[0].File)
	assert.Equal(t, "olderEarthquakes.csv", eq[1].File)

	cy := SpecsFor(domain.Cyclone)
	require.Len(t, cy, 2)
	assert.Equal(t, "atlantic_pacific_storms.csv", cy[0].File)

	assert.Len(t, Specs(), 6)
}

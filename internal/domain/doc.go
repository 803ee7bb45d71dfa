// Package domain models the natural-disaster events drawn on the world map.
//
// # Data Sources
//
// The map is fed by a static snapshot of six CSV files, one or two per
// category. They come from different agencies and share no schema:
//
//	earthquakes.csv              Magnitude, Longitude, Latitude, Date, Time
//	olderEarthquakes.csv         mag, longitude, latitude, time
//	tsunami.csv                  TS_INTENSI, LONGITUDE, LATITUDE, DATE_STRIN, ARR_HOUR, ARR_MIN
//	atlantic_pacific_storms.csv  Maximum Wind, Longitude, Latitude, Date, Time
//	american_winds.csv           max_wind_kt, year, track
//	volcan.csv                   TOTAL_DEATHS, Longitude, Latitude, Day, Month, Year
//
// # Date Conventions
//
// Every date is normalized to DD/MM/YYYY ([DateLayout]):
//
//	earthquakes.csv       "01 15 1990"                 month day year
//	olderEarthquakes.csv  "1990-01-15T12:34:56.000Z"   first ten characters, year month day
//	tsunami.csv           "1990 01 15"                 year month day
//	storms                "19900115"                   compact year month day
//	american_winds.csv    "1990"                       year only, becomes 01/01/1990
//	volcan.csv            Day, Month, Year columns     joined as-is, e.g. "3/5/1902"
//
// A date that is not a real calendar day becomes [InvalidDate]. The event is
// kept; it simply never matches a year.
//
// # Time Conventions
//
// Clock times are display strings and are not validated:
//
//	earthquakes.csv       Time column as-is
//	olderEarthquakes.csv  characters 11-16 of the combined time, "12:34"
//	tsunami.csv           ARR_HOUR ":" ARR_MIN, no zero-padding, "7:5"
//	storms                HHMM digits: 4 digits "1230" → "12:30", 3 digits "930" → "9:30", else "00:00"
//	american_winds.csv    none
//	volcan.csv            none
//
// # Severity
//
// Events never carry raw magnitudes. Each category maps its raw column onto a
// marker radius range fitted to the observed min/max (see package scale):
//
//	Earthquake         magnitude       linear   [3, 10]
//	Tsunami            intensity       linear   [3, 10]
//	Cyclone            max wind (kt)   linear   [1, 5]
//	Volcanic Eruption  total deaths    power 0.2 [3, 5]
//
// # Hemispheres
//
// Storm coordinates carry hemisphere suffixes ("80.0W", "25.0N"). By default the
// suffix is stripped and the magnitude kept positive, matching the historic
// rendering of the map. Signed mode negates western and southern values.
package domain

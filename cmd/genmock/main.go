// Command genmock writes a deterministic sample snapshot: the six CSV files
// the map loads, with the same layout as the real sources. The base rows are
// the fixtures under data/mock; -extra appends seeded synthetic rows to each
// file for load testing.
//
// Usage:
//
//	go run ./cmd/genmock -dir data/mock
//	go run ./cmd/genmock -dir /tmp/big -extra 5000
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type mockFile struct {
	file string
	rows [][]string
	gen  func(r *rand.Rand) []string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "data/mock", "output directory")
	extra := flag.Int("extra", 0, "synthetic rows appended to each file")
	seed := flag.Uint64("seed", 1918, "seed for synthetic rows")
	flag.Parse()

	if *extra < 0 {
		flag.Usage()
		return fmt.Errorf("-extra must be >= 0")
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *dir, err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	for _, f := range files() {
		rows := f.rows
		for range *extra {
			rows = append(rows, f.gen(rng))
		}
		path := filepath.Join(*dir, f.file)
		if err := writeCSV(path, rows); err != nil {
			return err
		}
		log.Printf("%s: %d rows", f.file, len(rows)-1)
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func coord(r *rand.Rand, limit float64) float64 {
	return (r.Float64()*2 - 1) * limit
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func hemi(v float64, pos, neg string) string {
	if v < 0 {
		return fixed(-v, 1) + neg
	}
	return fixed(v, 1) + pos
}

func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func genEarthquake(r *rand.Rand) []string {
	return []string{
		fmt.Sprintf("%02d/%02d/%d", between(r, 1, 12), between(r, 1, 28), between(r, 1965, 2016)),
		fmt.Sprintf("%02d:%02d:%02d", r.IntN(24), r.IntN(60), r.IntN(60)),
		fixed(coord(r, 80), 3), fixed(coord(r, 180), 3),
		"Earthquake", fixed(r.Float64()*600, 1), fixed(5.5+r.Float64()*3.6, 1),
	}
}

func genOlderEarthquake(r *rand.Rand) []string {
	return []string{
		fmt.Sprintf("%d-%02d-%02dT%02d:%02d:%02d.000Z", between(r, 1918, 1964), between(r, 1, 12), between(r, 1, 28), r.IntN(24), r.IntN(60), r.IntN(60)),
		fixed(coord(r, 80), 2), fixed(coord(r, 180), 2),
		fixed(r.Float64()*600, 1), fixed(5.5+r.Float64()*3.6, 1), "synthetic",
	}
}

func genTsunami(r *rand.Rand) []string {
	return []string{
		fmt.Sprintf("%d/%02d/%02d", between(r, 1918, 2018), between(r, 1, 12), between(r, 1, 28)),
		strconv.Itoa(r.IntN(24)), strconv.Itoa(r.IntN(60)),
		fixed(coord(r, 70), 2), fixed(coord(r, 180), 2),
		fixed(float64(between(r, -8, 10))/2, 1), "synthetic",
	}
}

func genStorm(r *rand.Rand) []string {
	year := between(r, 1918, 2018)
	return []string{
		fmt.Sprintf("AL%02d%d", between(r, 1, 30), year), "SYNTHETIC",
		fmt.Sprintf("%d%02d%02d", year, between(r, 6, 11), between(r, 1, 28)),
		strconv.Itoa(r.IntN(4) * 600), "", "HU",
		hemi(5+r.Float64()*40, "N", "S"), hemi(-(40 + r.Float64()*80), "E", "W"),
		strconv.Itoa(between(r, 4, 37) * 5),
	}
}

func genStormTrack(r *rand.Rand) []string {
	points := between(r, 1, 4)
	track := make([]string, 0, 2*points)
	lat, lon := 10+r.Float64()*20, -(50 + r.Float64()*50)
	for range points {
		track = append(track, hemi(lat, "N", "S"), hemi(lon, "E", "W"))
		lat += r.Float64() * 3
		lon -= r.Float64() * 3
	}
	return []string{"SYNTHETIC", strconv.Itoa(between(r, 1918, 2018)), strconv.Itoa(between(r, 7, 32) * 5), strings.Join(track, " ")}
}

func genEruption(r *rand.Rand) []string {
	deaths := ""
	if r.IntN(3) == 0 {
		deaths = strconv.Itoa(r.IntN(30000))
	}
	return []string{
		strconv.Itoa(between(r, 1900, 2018)), strconv.Itoa(between(r, 1, 12)), strconv.Itoa(between(r, 1, 28)),
		"Synthetic", fixed(coord(r, 60), 2), fixed(coord(r, 180), 2), deaths,
	}
}

func files() []mockFile {
	gens := []func(*rand.Rand) []string{genEarthquake, genOlderEarthquake, genTsunami, genStorm, genStormTrack, genEruption}
	out := baseFiles()
	for i := range out {
		out[i].gen = gens[i]
	}
	return out
}

// baseFiles are the fixture rows, header first, in load order.
func baseFiles() []mockFile {
	return []mockFile{
		{
			file: "earthquakes.csv",
			rows: [][]string{
				{"Date", "Time", "Latitude", "Longitude", "Type", "Depth", "Magnitude"},
				{"01/02/1965", "13:44:18", "19.246", "145.616", "Earthquake", "131.6", "6"},
				{"03/28/1964", "03:36:16", "61.04", "-147.73", "Earthquake", "25", "9.2"},
				{"05/22/1960", "19:11:20", "-38.143", "-73.407", "Earthquake", "25", "9.5"},
				{"10/17/1989", "04:15:24", "37.036", "-121.883", "Earthquake", "18", "6.9"},
				{"01/15/1990", "11:03:51", "35.853", "140.271", "Earthquake", "62.3", "6.5"},
				{"06/20/1990", "21:00:10", "36.957", "49.409", "Earthquake", "19", "7.4"},
				{"01/17/1995", "20:46:52", "34.583", "135.018", "Earthquake", "21.9", "6.9"},
				{"12/26/2004", "00:58:53", "3.295", "95.982", "Earthquake", "30", "9.1"},
				{"10/08/2005", "03:50:40", "34.539", "73.588", "Earthquake", "26", "7.6"},
				{"01/12/2010", "21:53:10", "18.443", "-72.571", "Earthquake", "13", "7"},
				{"02/27/2010", "06:34:11", "-36.122", "-72.898", "Earthquake", "22.9", "8.8"},
				{"03/11/2011", "05:46:24", "38.297", "142.373", "Earthquake", "29", "9.1"},
				{"04/25/2015", "06:11:25", "28.231", "84.731", "Earthquake", "8.22", "7.8"},
				{"11/13/2016", "11:02:56", "-42.737", "173.054", "Earthquake", "15.11", "7.8"},
				{"02/30/1999", "12:00:00", "10.0", "10.0", "Earthquake", "10", "6.1"},
				{"07/04/2001", "08:00:00", "", "20.5", "Earthquake", "10", "5.9"},
			},
		},
		{
			file: "olderEarthquakes.csv",
			rows: [][]string{
				{"time", "latitude", "longitude", "depth", "mag", "place"},
				{"1918-08-15T12:18:15.000Z", "5.66", "123.56", "25", "8.3", "Celebes Sea"},
				{"1920-12-16T12:05:48.000Z", "36.6", "105.32", "25", "7.8", "Haiyuan, China"},
				{"1923-09-01T02:58:35.000Z", "35.33", "139.14", "25", "7.9", "Kanto, Japan"},
				{"1933-03-02T17:31:00.000Z", "39.22", "144.62", "35", "8.4", "Sanriku, Japan"},
				{"1939-12-26T23:57:21.000Z", "39.77", "39.53", "20", "7.7", "Erzincan, Turkey"},
				{"1946-04-01T12:28:56.000Z", "52.75", "-163.5", "15", "8.6", "Aleutian Islands"},
				{"1952-11-04T16:58:30.000Z", "52.76", "160.06", "21.6", "9", "Kamchatka"},
				{"1957-03-09T14:22:31.000Z", "51.56", "-175.39", "33", "8.6", "Andreanof Islands"},
				{"1962-09-01T19:20:38.000Z", "35.62", "49.87", "15", "7.1", "Buin Zahra, Iran"},
				{"1950-08-15T14:09:30.000Z", "28.5", "96.5", "15", "n/a", "Assam"},
			},
		},
		{
			file: "tsunami.csv",
			rows: [][]string{
				{"DATE_STRIN", "ARR_HOUR", "ARR_MIN", "LATITUDE", "LONGITUDE", "TS_INTENSI", "LOCATION"},
				{"1918/10/11", "14", "14", "18.5", "-67.5", "3", "Puerto Rico"},
				{"1933/03/02", "17", "31", "39.22", "144.62", "3.5", "Sanriku"},
				{"1946/04/01", "12", "28", "52.75", "-163.5", "4", "Unimak Island"},
				{"1952/11/04", "", "", "52.76", "160.06", "4", "Kamchatka"},
				{"1960/05/22", "19", "11", "-38.24", "-73.05", "4.5", "Chile"},
				{"1964/03/28", "3", "36", "61.02", "-147.65", "4", "Prince William Sound"},
				{"19760816", "16", "11", "6.29", "124.09", "3", "Moro Gulf"},
				{"1998/07/17", "8", "49", "-2.96", "141.93", "2.5", "Papua New Guinea"},
				{"2004/12/26", "0", "58", "3.3", "95.98", "4.5", "Sumatra"},
				{"2010/02/27", "6", "34", "-36.12", "-72.9", "3", "Maule"},
				{"2011/03/11", "5", "46", "38.3", "142.37", "5", "Tohoku"},
				{"2018/09/28", "10", "2", "-0.18", "119.84", "2", "Palu"},
				{"1983/05/26", "", "", "40.46", "139.1", "", "Sea of Japan"},
			},
		},
		{
			file: "atlantic_pacific_storms.csv",
			rows: [][]string{
				{"ID", "Name", "Date", "Time", "Event", "Status", "Latitude", "Longitude", "Maximum Wind"},
				{"AL061928", "OKEECHOBEE", "19280917", "0", "L", "HU", "26.7N", "80.0W", "125"},
				{"AL041969", "CAMILLE", "19690818", "400", "L", "HU", "30.3N", "89.4W", "150"},
				{"EP201997", "LINDA", "19970912", "1200", "", "HU", "17.6N", "112.2W", "160"},
				{"AL131992", "ANDREW", "19920824", "900", "L", "HU", "25.5N", "80.3W", "145"},
				{"AL191998", "MITCH", "19981026", "1800", "", "HU", "16.9N", "83.1W", "155"},
				{"AL122005", "KATRINA", "20050829", "1110", "L", "HU", "29.3N", "89.6W", "110"},
				{"AL182012", "SANDY", "20121029", "2330", "L", "EX", "39.4N", "74.4W", "70"},
				{"EP202015", "PATRICIA", "20151023", "600", "", "HU", "17.3N", "105.6W", "185"},
				{"AL112017", "IRMA", "20170906", "1115", "L", "HU", "18.2N", "63.1W", "155"},
				{"AL152017", "MARIA", "20170920", "1015", "L", "HU", "18.0N", "65.9W", "135"},
				{"SP011950", "UNNAMED", "19500212", "1200", "", "TS", "12.0S", "170.0W", "45"},
			},
		},
		{
			file: "american_winds.csv",
			rows: [][]string{
				{"name", "year", "max_wind_kt", "track"},
				{"GALVESTON", "1900", "125", "28.1N 92.3W 28.9N 94.1W 29.3N 95.0W"},
				{"NEW ENGLAND", "1938", "140", "31.2N 75.5W 36.9N 73.2W 41.3N 72.7W"},
				{"HAZEL", "1954", "115", "31.1N 78.7W 33.9N 78.6W"},
				{"GILBERT", "1988", "160", "16.4N 80.9W 19.7N 85.3W 21.6N 90.3W"},
				{"HUGO", "1989", "140", "16.3N 61.0W 32.8N 79.8W"},
				{"WILMA", "2005", "160", "17.6N 82.5W 20.6N 86.8W 25.9N 81.6W"},
				{"HARVEY", "2017", "115", "27.8N 96.8W 28.9N 94.0W 29.8N 93.7W"},
				{"MICHAEL", "2018", "140", "25.4N 85.8W 30.0N 85.5W 31.5N 84.9W"},
				{"UNNAMED", "1975", "65", ""},
			},
		},
		{
			file: "volcan.csv",
			rows: [][]string{
				{"Year", "Month", "Day", "Name", "Latitude", "Longitude", "TOTAL_DEATHS"},
				{"1902", "5", "8", "Pelee", "14.82", "-61.17", "28000"},
				{"1902", "10", "24", "Santa Maria", "14.76", "-91.55", "8750"},
				{"1919", "5", "20", "Kelut", "-7.93", "112.31", "5110"},
				{"1951", "1", "21", "Lamington", "-8.95", "148.15", "2942"},
				{"1963", "3", "17", "Agung", "-8.34", "115.51", "1148"},
				{"1980", "5", "18", "St. Helens", "46.2", "-122.18", "57"},
				{"1982", "3", "28", "El Chichon", "17.36", "-93.23", "2000"},
				{"1985", "11", "13", "Ruiz", "4.89", "-75.32", "23080"},
				{"1991", "6", "15", "Pinatubo", "15.13", "120.35", "450"},
				{"1991", "", "", "Unzen", "32.76", "130.29", ""},
				{"2010", "10", "26", "Merapi", "-7.54", "110.44", "386"},
				{"2014", "9", "27", "Ontake", "35.89", "137.48", "63"},
				{"2018", "6", "3", "Fuego", "14.47", "-90.88", ""},
			},
		},
	}
}

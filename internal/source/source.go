// Package source normalizes the raw snapshot tables into domain events.
//
// Each adapter fits its category's severity scale from the raw magnitude
// column before mapping rows, and drops rows whose severity or coordinates do
// not parse to finite numbers.
package source

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/scale"
)

// Row is one record of a source table keyed by header name.
type Row map[string]string

// Get returns the cell for col, or "" when the column is absent.
func (r Row) Get(col string) string { return r[col] }

// Options tunes normalization choices the data does not settle on its own.
type Options struct {
	// SignedHemispheres negates western longitudes and southern latitudes in
	// the storm sources. Off by default: suffixes are stripped and the
	// magnitude kept.
	SignedHemispheres bool
}

// Stats counts what happened to one source file.
type Stats struct {
	File     string `json:"file"`
	Rows     int    `json:"rows"`
	Events   int    `json:"events"`
	Rejected int    `json:"rejected"`
}

// Result is the normalized output for one category.
type Result struct {
	Category domain.Category
	Events   []domain.Event
	Fit      scale.Fit
	Stats    []Stats
}

// Rejected sums rejected records across the contributing files.
func (r Result) Rejected() int {
	n := 0
	for _, s := range r.Stats {
		n += s.Rejected
	}
	return n
}

// merge concatenates first before second. The fit of the later file wins.
func merge(first, second Result, fit scale.Fit) Result {
	events := make([]domain.Event, 0, len(first.Events)+len(second.Events))
	events = append(events, first.Events...)
	events = append(events, second.Events...)
	return Result{
		Category: first.Category,
		Events:   events,
		Fit:      fit,
		Stats:    slices.Concat(first.Stats, second.Stats),
	}
}

// parseNumber parses a trimmed decimal cell. Empty, malformed and non-finite
// values report false.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// columnExtent fits over every parseable value in col.
func columnExtent(rows []Row, col string) (min, max float64, ok bool) {
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := parseNumber(r.Get(col)); ok {
			values = append(values, v)
		}
	}
	return scale.Extent(values)
}

// fitColumn returns the category fit over col, or an unfitted Fit when the
// column holds no numbers.
func fitColumn(c domain.Category, rows []Row, col string) scale.Fit {
	min, max, ok := columnExtent(rows, col)
	if !ok {
		return scale.Fit{}
	}
	return scale.ForCategory(c, min, max)
}

// builder accumulates events and rejection counts for one file.
type builder struct {
	category domain.Category
	file     string
	events   []domain.Event
	stats    Stats
}

func newBuilder(c domain.Category, file string, rows int) *builder {
	return &builder{
		category: c,
		file:     file,
		events:   make([]domain.Event, 0, rows),
		stats:    Stats{File: file, Rows: rows},
	}
}

// add constructs an event from already-parsed values. A failed parse upstream
// is passed as ok=false and counted the same way as a construction rejection.
func (b *builder) add(ok bool, date, clock string, severity, lon, lat float64) {
	if !ok {
		b.stats.Rejected++
		return
	}
	ev, err := domain.NewEvent(b.category, date, clock, severity, lon, lat)
	if err != nil {
		b.stats.Rejected++
		return
	}
	ev.Source = b.file
	b.events = append(b.events, ev)
}

func (b *builder) result(fit scale.Fit) Result {
	b.stats.Events = len(b.events)
	return Result{
		Category: b.category,
		Events:   b.events,
		Fit:      fit,
		Stats:    []Stats{b.stats},
	}
}

// substring mirrors a clamped [start, end) slice on a string.
func substring(s string, start, end int) string {
	if start > len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}

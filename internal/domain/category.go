package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a name does not match any disaster category.
var ErrUnknownCategory = errors.New("unknown category")

// Category is the fixed set of disaster types shown on the map. Each value
// carries its display name, marker color, and the shape of its severity scale.
type Category int

const (
	Earthquake Category = iota
	Tsunami
	Cyclone
	VolcanicEruption
)

// ScaleKind selects how raw magnitudes are mapped onto marker radii.
type ScaleKind int

const (
	ScaleLinear ScaleKind = iota
	ScalePower
)

type categoryInfo struct {
	slug     string
	name     string
	color    string
	kind     ScaleKind
	lo, hi   float64
	exponent float64
}

var categoryTable = [...]categoryInfo{
	Earthquake:       {slug: "earthquake", name: "Earthquake", color: "brown", kind: ScaleLinear, lo: 3, hi: 10},
	Tsunami:          {slug: "tsunami", name: "Tsunami", color: "blue", kind: ScaleLinear, lo: 3, hi: 10},
	Cyclone:          {slug: "cyclone", name: "Cyclone", color: "grey", kind: ScaleLinear, lo: 1, hi: 5},
	VolcanicEruption: {slug: "volcanic_eruption", name: "Volcanic Eruption", color: "red", kind: ScalePower, lo: 3, hi: 5, exponent: 0.2},
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Earthquake, Tsunami, Cyclone, VolcanicEruption}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	return c >= Earthquake && c <= VolcanicEruption
}

func (c Category) info() categoryInfo {
	if !c.Valid() {
		return categoryInfo{}
	}
	return categoryTable[c]
}

// String returns the display name, e.g. "Volcanic Eruption".
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return c.info().name
}

// Slug returns the stable machine name, e.g. "volcanic_eruption".
func (c Category) Slug() string { return c.info().slug }

// Color returns the marker color. Every category has exactly one.
func (c Category) Color() string { return c.info().color }

// ScaleKind returns the scale family used to size this category's markers.
func (c Category) ScaleKind() ScaleKind { return c.info().kind }

// Range returns the marker radius range severities are mapped into.
func (c Category) Range() (lo, hi float64) {
	info := c.info()
	return info.lo, info.hi
}

// Exponent returns the power-scale exponent, or 0 for linear categories.
func (c Category) Exponent() float64 { return c.info().exponent }

// MarshalText encodes the category as its slug.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal category %d: %w", int(c), ErrUnknownCategory)
	}
	return []byte(c.Slug()), nil
}

// UnmarshalText accepts anything ParseCategory accepts.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory matches a slug or display name, ignoring case, spaces,
// hyphens and underscores ("Volcanic Eruption", "volcanic-eruption").
func ParseCategory(s string) (Category, error) {
	key := normalizeCategoryKey(s)
	for _, c := range Categories() {
		if key == normalizeCategoryKey(c.Slug()) || key == normalizeCategoryKey(c.String()) {
			return c, nil
		}
	}
	switch key {
	case "volcano", "volcanic", "eruption":
		return VolcanicEruption, nil
	case "quake":
		return Earthquake, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownCategory)
}

func normalizeCategoryKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

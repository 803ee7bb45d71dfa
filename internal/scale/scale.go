// Package scale fits raw disaster magnitudes onto marker radius ranges.
package scale

import (
	"fmt"
	"math"

	"github.com/couchcryptid/disaster-map/internal/domain"
)

// Fit maps a raw domain [Min, Max] onto a display range [Lo, Hi]. The zero
// value is unfitted and maps every input to NaN, which event construction
// rejects.
type Fit struct {
	Kind     domain.ScaleKind `json:"kind" yaml:"kind"`
	Min      float64          `json:"min" yaml:"min"`
	Max      float64          `json:"max" yaml:"max"`
	Lo       float64          `json:"lo" yaml:"lo"`
	Hi       float64          `json:"hi" yaml:"hi"`
	Exponent float64          `json:"exponent,omitempty" yaml:"exponent,omitempty"`

	fitted bool
}

// Linear returns a linear fit of [min, max] onto [lo, hi].
func Linear(min, max, lo, hi float64) Fit {
	return Fit{Kind: domain.ScaleLinear, Min: min, Max: max, Lo: lo, Hi: hi, fitted: true}
}

// Pow returns a power fit with the given exponent. Inputs are raised to the
// exponent before being interpolated linearly, so exponents below one compress
// heavy tails.
func Pow(min, max, lo, hi, exponent float64) Fit {
	return Fit{Kind: domain.ScalePower, Min: min, Max: max, Lo: lo, Hi: hi, Exponent: exponent, fitted: true}
}

// ForCategory builds the fit the category's associated data asks for over the
// observed raw extent [min, max].
func ForCategory(c domain.Category, min, max float64) Fit {
	lo, hi := c.Range()
	if c.ScaleKind() == domain.ScalePower {
		return Pow(min, max, lo, hi, c.Exponent())
	}
	return Linear(min, max, lo, hi)
}

// Fitted reports whether f came from a constructor.
func (f Fit) Fitted() bool { return f.fitted }

// Apply maps a raw value into the display range. Values outside the domain
// are extrapolated, not clamped. A degenerate domain (Min == Max) maps every
// input to Lo.
func (f Fit) Apply(x float64) float64 {
	if !f.fitted {
		return math.NaN()
	}
	d0, d1 := f.transform(f.Min), f.transform(f.Max)
	span := d1 - d0
	if span == 0 || math.IsNaN(span) {
		return f.Lo
	}
	return f.Lo + (f.transform(x)-d0)/span*(f.Hi-f.Lo)
}

func (f Fit) transform(x float64) float64 {
	if f.Kind != domain.ScalePower {
		return x
	}
	if x < 0 {
		return -math.Pow(-x, f.Exponent)
	}
	return math.Pow(x, f.Exponent)
}

func (f Fit) String() string {
	if !f.fitted {
		return "unfitted"
	}
	if f.Kind == domain.ScalePower {
		return fmt.Sprintf("pow^%g [%g,%g] -> [%g,%g]", f.Exponent, f.Min, f.Max, f.Lo, f.Hi)
	}
	return fmt.Sprintf("linear [%g,%g] -> [%g,%g]", f.Min, f.Max, f.Lo, f.Hi)
}

// Extent returns the min and max of the finite values. ok is false when there
// are none.
func Extent(values []float64) (min, max float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max, ok
}

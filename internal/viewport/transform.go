package viewport

import (
	"fmt"
	"math"
)

const (
	MinScale = 1.0
	MaxScale = 8.0

	// ZoomStep is the factor applied by one zoom button press.
	ZoomStep = 1.2
)

// Transform is the zoom state applied on top of the projection:
// screen = Translate + Scale*base.
type Transform struct {
	Scale     float64 `json:"scale" yaml:"scale"`
	Translate Point   `json:"translate" yaml:"translate"`
}

// Identity is the unzoomed transform.
func Identity() Transform { return Transform{Scale: 1} }

// Apply maps a base point to the screen.
func (t Transform) Apply(p Point) Point {
	return Point{X: t.Translate.X + t.Scale*p.X, Y: t.Translate.Y + t.Scale*p.Y}
}

// Invert maps a screen point back to base coordinates.
func (t Transform) Invert(p Point) Point {
	return Point{X: (p.X - t.Translate.X) / t.Scale, Y: (p.Y - t.Translate.Y) / t.Scale}
}

// String renders the transform as an SVG transform attribute.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", t.Translate.X, t.Translate.Y, t.Scale)
}

// ClampScale limits s to [MinScale, MaxScale]. NaN collapses to MinScale.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return MinScale
	}
	return math.Max(MinScale, math.Min(s, MaxScale))
}

// ClampTranslate keeps the scaled map covering a width x height viewport:
// x stays in [-(W*s-W), 0] and y in [-(H*s-H), 0].
func ClampTranslate(t Transform, width, height float64) Transform {
	left := -(width*t.Scale - width)
	top := -(height*t.Scale - height)
	t.Translate.X = clamp(t.Translate.X, left, 0)
	t.Translate.Y = clamp(t.Translate.Y, top, 0)
	return t
}

// zoomAround rescales t to k keeping the screen point p fixed.
func zoomAround(t Transform, p Point, k float64) Transform {
	base := t.Invert(p)
	return Transform{
		Scale:     k,
		Translate: Point{X: p.X - k*base.X, Y: p.Y - k*base.Y},
	}
}

// clamp limits v to [lo, hi]. A NaN v becomes hi.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return hi
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

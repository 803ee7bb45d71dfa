// Package viewport maintains the map projection and the zoom/pan transform.
//
// The transform is updated through three channels: viewport resize, pointer
// gestures (Pan, ZoomAt) and discrete controls (ZoomIn, ZoomOut, ZoomTo,
// Reset). After every update the scale lies in [MinScale, MaxScale] and the
// translation keeps the map covering the whole viewport.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyViewport is returned for a viewport without area.
var ErrEmptyViewport = errors.New("viewport has no area")

// Placement is where a marker goes under the current transform.
type Placement struct {
	Base   Point   `json:"base" yaml:"base"`
	Screen Point   `json:"screen" yaml:"screen"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// Engine owns the projection and transform of one viewport.
// It is not safe for concurrent use; the app state serializes access.
type Engine struct {
	width, height float64
	projection    Projection
	transform     Transform
	generation    uint64
}

// NewEngine returns an engine for a width x height viewport at scale 1.
func NewEngine(width, height float64) (*Engine, error) {
	e := &Engine{transform: Identity()}
	if err := e.Resize(width, height); err != nil {
		return nil, err
	}
	return e, nil
}

// Resize rebuilds the projection for the new viewport and reapplies the
// current zoom scale around the new center. Pan offsets are not preserved.
// Every resize starts a new generation.
func (e *Engine) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) || !finite(width, height) {
		return fmt.Errorf("resize to %gx%g: %w", width, height, ErrEmptyViewport)
	}
	scale := e.transform.Scale
	e.width, e.height = width, height
	e.projection = Equirectangular(width, height)
	e.transform = Identity()
	e.generation++
	e.zoomTo(e.Center(), scale)
	return nil
}

// Pan moves the map by (dx, dy) screen pixels, within bounds. Non-finite
// deltas are ignored.
func (e *Engine) Pan(dx, dy float64) {
	if !finite(dx, dy) {
		return
	}
	t := e.transform
	t.Translate.X += dx
	t.Translate.Y += dy
	e.transform = ClampTranslate(t, e.width, e.height)
}

// ZoomAt multiplies the scale by factor keeping screen point (x, y) fixed,
// as a wheel or pinch gesture does. Non-finite input is ignored.
func (e *Engine) ZoomAt(x, y, factor float64) {
	if !finite(x, y, factor) {
		return
	}
	e.zoomTo(Point{X: x, Y: y}, e.transform.Scale*factor)
}

// ZoomIn zooms one step around the viewport center. It reports false and
// leaves the transform alone when already at MaxScale.
func (e *Engine) ZoomIn() bool {
	if e.transform.Scale >= MaxScale {
		return false
	}
	e.zoomTo(e.Center(), e.transform.Scale*ZoomStep)
	return true
}

// ZoomOut zooms out one step around the viewport center. It reports false
// when already at MinScale.
func (e *Engine) ZoomOut() bool {
	if e.transform.Scale <= MinScale {
		return false
	}
	e.zoomTo(e.Center(), e.transform.Scale/ZoomStep)
	return true
}

// ZoomTo sets an absolute scale around the viewport center.
func (e *Engine) ZoomTo(scale float64) {
	e.zoomTo(e.Center(), scale)
}

// Reset returns to scale 1 with no translation.
func (e *Engine) Reset() {
	e.transform = Identity()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (e *Engine) zoomTo(p Point, scale float64) {
	t := zoomAround(e.transform, p, ClampScale(scale))
	e.transform = ClampTranslate(t, e.width, e.height)
}

// Place projects a marker and sizes it so its apparent radius stays at
// severity regardless of zoom.
func (e *Engine) Place(lon, lat, severity float64) Placement {
	base := e.projection.Project(lon, lat)
	return Placement{
		Base:   base,
		Screen: e.transform.Apply(base),
		Radius: severity / e.transform.Scale,
	}
}

// Transform returns the current zoom transform.
func (e *Engine) Transform() Transform { return e.transform }

// Scale returns the current zoom scale.
func (e *Engine) Scale() float64 { return e.transform.Scale }

// Projection returns the base projection.
func (e *Engine) Projection() Projection { return e.projection }

// Size returns the viewport width and height.
func (e *Engine) Size() (width, height float64) { return e.width, e.height }

// Center returns the viewport center.
func (e *Engine) Center() Point { return Point{X: e.width / 2, Y: e.height / 2} }

// Generation counts resizes. A value captured before an asynchronous step
// tells the caller whether the viewport changed meanwhile.
func (e *Engine) Generation() uint64 { return e.generation }

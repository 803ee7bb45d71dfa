// Package app holds the interactive map state and its update entry points:
// resize, year change, category toggle, zoom and pan. Every entry point runs
// under one mutex, so loader completions arriving on other goroutines are
// serialized with user input.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/filter"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/couchcryptid/disaster-map/internal/render"
	"github.com/couchcryptid/disaster-map/internal/store"
	"github.com/couchcryptid/disaster-map/internal/viewport"
)

var (
	// ErrCategoryUnavailable is returned when toggling a category that has
	// not finished loading, or failed to.
	ErrCategoryUnavailable = errors.New("category unavailable")

	// ErrYearOutOfRange is returned for a year outside the slider range.
	ErrYearOutOfRange = errors.New("year out of range")
)

// Options configures a State.
type Options struct {
	MinYear int
	MaxYear int
	Width   float64
	Height  float64

	// SelectOnReady enables a category's markers as soon as it loads,
	// instead of only enabling its control.
	SelectOnReady bool
}

// DefaultOptions are the slider range and viewport size of the stock map.
func DefaultOptions() Options {
	return Options{MinYear: 1918, MaxYear: 2018, Width: 960, Height: 500}
}

// State is the application state.
type State struct {
	mu       sync.Mutex
	opts     Options
	store    *store.Store
	engine   *viewport.Engine
	markers  *render.Orchestrator
	logger   *slog.Logger
	year     int
	selected filter.Selection
	enabled  filter.Selection
}

// New builds the state for an empty map at the first year of the range.
func New(s *store.Store, r render.Renderer, logger *slog.Logger, metrics *observability.Metrics, opts Options) (*State, error) {
	if opts.MinYear > opts.MaxYear {
		return nil, fmt.Errorf("year range %d-%d: %w", opts.MinYear, opts.MaxYear, ErrYearOutOfRange)
	}
	engine, err := viewport.NewEngine(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	st := &State{
		opts:    opts,
		store:   s,
		engine:  engine,
		markers: render.NewOrchestrator(r, metrics),
		logger:  logger,
		year:    opts.MinYear,
	}
	st.redraw()
	return st, nil
}

// Resize rebuilds the projection for the new viewport, reapplies the zoom
// scale and redraws the map and markers.
func (s *State) Resize(width, height float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.Resize(width, height); err != nil {
		return err
	}
	s.logger.Debug("viewport resized", "width", width, "height", height, "generation", s.engine.Generation())
	s.redraw()
	return nil
}

// SetYear selects year and refilters, as on slider release.
func (s *State) SetYear(year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkYear(year); err != nil {
		return err
	}
	s.year = year
	s.redraw()
	return nil
}

// PreviewYear records year while the slider is dragged and returns its label.
// Markers are not refiltered until the next SetYear, Toggle or Resize.
func (s *State) PreviewYear(year int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkYear(year); err != nil {
		return "", err
	}
	s.year = year
	return strconv.Itoa(year), nil
}

func (s *State) checkYear(year int) error {
	if year < s.opts.MinYear || year > s.opts.MaxYear {
		return fmt.Errorf("%d not in %d-%d: %w", year, s.opts.MinYear, s.opts.MaxYear, ErrYearOutOfRange)
	}
	return nil
}

// Toggle shows or hides category c and refilters. Categories whose control
// is not enabled yet are refused.
func (s *State) Toggle(c domain.Category, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled.Has(c) {
		return fmt.Errorf("toggle %s: %w", c, ErrCategoryUnavailable)
	}
	s.selected = s.selected.Set(c, on)
	s.redraw()
	return nil
}

// CategoryReady enables the control of category c once its data is stored.
// It is safe to call from loader goroutines at any time, including after a
// resize; the redraw uses the live transform.
func (s *State) CategoryReady(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Available(c) {
		s.logger.Warn("ready signal for unavailable category", "category", c.Slug())
		return
	}
	s.enabled = s.enabled.With(c)
	s.logger.Debug("category enabled", "category", c.Slug(), "generation", s.engine.Generation())
	if s.opts.SelectOnReady {
		s.selected = s.selected.With(c)
		s.redraw()
	}
}

// ZoomIn zooms one step around the center. It reports false at the maximum.
func (s *State) ZoomIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.engine.ZoomIn() {
		return false
	}
	s.markers.Retransform(s.engine)
	return true
}

// ZoomOut zooms out one step around the center. It reports false at the minimum.
func (s *State) ZoomOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.engine.ZoomOut() {
		return false
	}
	s.markers.Retransform(s.engine)
	return true
}

// ZoomTo sets the zoom scale, as the numeric zoom control does.
func (s *State) ZoomTo(scale float64) {
	s.transform(func(e *viewport.Engine) { e.ZoomTo(scale) })
}

// Reset returns to the unzoomed map.
func (s *State) Reset() {
	s.transform((*viewport.Engine).Reset)
}

// Pan drags the map by (dx, dy) pixels.
func (s *State) Pan(dx, dy float64) {
	s.transform(func(e *viewport.Engine) { e.Pan(dx, dy) })
}

// ZoomAt zooms by factor around the pointer at (x, y).
func (s *State) ZoomAt(x, y, factor float64) {
	s.transform(func(e *viewport.Engine) { e.ZoomAt(x, y, factor) })
}

func (s *State) transform(fn func(*viewport.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
	s.markers.Retransform(s.engine)
}

// Hover highlights marker id and returns its tooltip.
func (s *State) Hover(id string) (render.Tooltip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers.Hover(id)
}

// Unhover restores marker id.
func (s *State) Unhover(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers.Unhover(id)
}

// redraw refilters and rebuilds the marker set. Callers hold s.mu.
func (s *State) redraw() {
	events := filter.Apply(s.store, s.selected, s.year)
	s.markers.Rebuild(events, s.engine)
}

// Snapshot is a consistent view of the state.
type Snapshot struct {
	Year       int                `json:"year" yaml:"year"`
	Selected   []domain.Category  `json:"selected" yaml:"selected"`
	Enabled    []domain.Category  `json:"enabled" yaml:"enabled"`
	Width      float64            `json:"width" yaml:"width"`
	Height     float64            `json:"height" yaml:"height"`
	Generation uint64             `json:"generation" yaml:"generation"`
	Transform  viewport.Transform `json:"transform" yaml:"transform"`
	Markers    []render.Marker    `json:"markers" yaml:"markers"`
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.engine.Size()
	return Snapshot{
		Year:       s.year,
		Selected:   s.selected.Categories(),
		Enabled:    s.enabled.Categories(),
		Width:      w,
		Height:     h,
		Generation: s.engine.Generation(),
		Transform:  s.engine.Transform(),
		Markers:    s.markers.Markers(),
	}
}

// Year returns the selected year.
func (s *State) Year() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.year
}

// Package render drives marker draw calls on an external rendering surface.
//
// The Orchestrator owns the visible marker set. A year or category change
// discards every marker and draws the new set; a zoom, pan or resize keeps
// the set and moves every marker with the same transform as the map.
package render

import (
	"errors"
	"slices"
	"strconv"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/couchcryptid/disaster-map/internal/viewport"
)

// ErrUnknownMarker is returned when a hover targets a marker that is not drawn.
var ErrUnknownMarker = errors.New("unknown marker")

// Renderer is the drawing surface. Implementations only draw; they never
// decide what is visible.
type Renderer interface {
	// Clear removes the map and all markers.
	Clear()
	// DrawMap draws the base map under transform t.
	DrawMap(t viewport.Transform)
	// DrawMarker adds one marker.
	DrawMarker(m Marker)
	// UpdateMarkers moves the map and every marker to transform t in one step.
	UpdateMarkers(t viewport.Transform, markers []Marker)
	// HighlightMarker redraws m with its current fill.
	HighlightMarker(m Marker)
}

// Placer positions markers. *viewport.Engine implements it.
type Placer interface {
	Place(lon, lat, severity float64) viewport.Placement
	Transform() viewport.Transform
}

// Marker is one drawn event.
type Marker struct {
	ID          string          `json:"id" yaml:"id"`
	Category    domain.Category `json:"category" yaml:"category"`
	Fill        string          `json:"fill" yaml:"fill"`
	Longitude   float64         `json:"longitude" yaml:"longitude"`
	Latitude    float64         `json:"latitude" yaml:"latitude"`
	Severity    float64         `json:"severity" yaml:"severity"`
	Base        viewport.Point  `json:"base" yaml:"base"`
	Screen      viewport.Point  `json:"screen" yaml:"screen"`
	Radius      float64         `json:"radius" yaml:"radius"`
	Highlighted bool            `json:"highlighted,omitempty" yaml:"highlighted,omitempty"`
	Tooltip     Tooltip         `json:"tooltip" yaml:"tooltip"`
}

func newMarker(ev domain.Event, p viewport.Placement) Marker {
	m := Marker{
		ID:        ev.ID,
		Category:  ev.Category,
		Fill:      ev.Color,
		Longitude: ev.Longitude,
		Latitude:  ev.Latitude,
		Severity:  ev.Severity,
		Tooltip:   NewTooltip(ev),
	}
	m.place(p)
	return m
}

func (m *Marker) place(p viewport.Placement) {
	m.Base = p.Base
	m.Screen = p.Screen
	m.Radius = p.Radius
}

// Orchestrator keeps the drawn markers in step with the filtered events and
// the viewport transform.
type Orchestrator struct {
	renderer Renderer
	metrics  *observability.Metrics
	markers  []Marker
	index    map[string]int
}

// NewOrchestrator returns an orchestrator drawing on r.
func NewOrchestrator(r Renderer, metrics *observability.Metrics) *Orchestrator {
	return &Orchestrator{renderer: r, metrics: metrics, index: map[string]int{}}
}

// Rebuild discards all markers, redraws the map and draws one marker per
// event, in event order. Identical events share an ID, so repeats get a
// "-2", "-3", ... suffix to keep every marker addressable.
func (o *Orchestrator) Rebuild(events []domain.Event, p Placer) {
	o.renderer.Clear()
	o.renderer.DrawMap(p.Transform())

	o.markers = make([]Marker, 0, len(events))
	o.index = make(map[string]int, len(events))
	for _, ev := range events {
		m := newMarker(ev, p.Place(ev.Longitude, ev.Latitude, ev.Severity))
		m.ID = o.uniqueID(m.ID)
		o.index[m.ID] = len(o.markers)
		o.markers = append(o.markers, m)
		o.renderer.DrawMarker(m)
	}

	o.metrics.MarkersDrawn.Set(float64(len(o.markers)))
	o.metrics.Redraws.Inc()
}

func (o *Orchestrator) uniqueID(id string) string {
	if _, dup := o.index[id]; !dup {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, dup := o.index[candidate]; !dup {
			return candidate
		}
	}
}

// Retransform repositions and resizes every marker for the current transform
// and hands the map and markers to the renderer together.
func (o *Orchestrator) Retransform(p Placer) {
	for i := range o.markers {
		m := &o.markers[i]
		m.place(p.Place(m.Longitude, m.Latitude, m.Severity))
	}
	o.renderer.UpdateMarkers(p.Transform(), o.Markers())
}

// Hover highlights marker id with its darkened category color and returns
// its tooltip.
func (o *Orchestrator) Hover(id string) (Tooltip, error) {
	m, err := o.marker(id)
	if err != nil {
		return Tooltip{}, err
	}
	m.Highlighted = true
	m.Fill = HighlightColor(m.Category.Color())
	o.renderer.HighlightMarker(*m)
	return m.Tooltip, nil
}

// Unhover restores the category color of marker id.
func (o *Orchestrator) Unhover(id string) error {
	m, err := o.marker(id)
	if err != nil {
		return err
	}
	m.Highlighted = false
	m.Fill = m.Category.Color()
	o.renderer.HighlightMarker(*m)
	return nil
}

func (o *Orchestrator) marker(id string) (*Marker, error) {
	i, ok := o.index[id]
	if !ok {
		return nil, ErrUnknownMarker
	}
	return &o.markers[i], nil
}

// Markers returns a copy of the drawn markers.
func (o *Orchestrator) Markers() []Marker {
	return slices.Clone(o.markers)
}

// Len returns the number of drawn markers.
func (o *Orchestrator) Len() int { return len(o.markers) }

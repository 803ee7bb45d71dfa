package render

import (
	"slices"
	"sync"

	"github.com/couchcryptid/disaster-map/internal/viewport"
)

// Command is one recorded draw call.
type Command struct {
	Op        string `json:"op" yaml:"op"`
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Fill      string `json:"fill,omitempty" yaml:"fill,omitempty"`
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`
	Count     int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Frame is the visible state of a Recorder.
type Frame struct {
	Transform viewport.Transform `json:"transform" yaml:"transform"`
	Markers   []Marker           `json:"markers" yaml:"markers"`
	Commands  []Command          `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// Recorder is a Renderer that keeps the draw calls it receives and the
// resulting marker set. It is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	transform viewport.Transform
	markers   []Marker
	commands  []Command
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{transform: viewport.Identity()}
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = nil
	r.commands = append(r.commands, Command{Op: "clear"})
}

func (r *Recorder) DrawMap(t viewport.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transform = t
	r.commands = append(r.commands, Command{Op: "map", Transform: t.String()})
}

func (r *Recorder) DrawMarker(m Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = append(r.markers, m)
	r.commands = append(r.commands, Command{Op: "marker", ID: m.ID, Fill: m.Fill})
}

func (r *Recorder) UpdateMarkers(t viewport.Transform, markers []Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transform = t
	r.markers = slices.Clone(markers)
	r.commands = append(r.commands, Command{Op: "update", Transform: t.String(), Count: len(markers)})
}

func (r *Recorder) HighlightMarker(m Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.markers {
		if r.markers[i].ID == m.ID {
			r.markers[i] = m
			break
		}
	}
	r.commands = append(r.commands, Command{Op: "highlight", ID: m.ID, Fill: m.Fill})
}

// Commands returns the draw calls recorded since the last Flush.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.commands)
}

// Frame returns the current state together with the recorded commands.
func (r *Recorder) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Frame{
		Transform: r.transform,
		Markers:   slices.Clone(r.markers),
		Commands:  slices.Clone(r.commands),
	}
}

// Flush returns the current frame and forgets the recorded commands.
func (r *Recorder) Flush() Frame {
	f := r.Frame()
	r.mu.Lock()
	r.commands = nil
	r.mu.Unlock()
	return f
}

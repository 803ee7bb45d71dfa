package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/viewport"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// growDuration is how long, in seconds, a new marker takes to reach its radius.
	growDuration float32 = 0.5
	growSteps            = 10

	oceanFill = "#d4e6f1"
)

// SVG renders the map and markers as a standalone SVG document. Markers sit
// inside the transformed map group, so their radius is divided by the scale
// and their on-screen size stays at severity.
type SVG struct {
	width, height float64
	transform     viewport.Transform
	markers       []Marker
	index         map[string]int
	animate       bool
}

// NewSVG returns an empty SVG surface of the given size. With animate set,
// markers grow in from radius zero.
func NewSVG(width, height float64, animate bool) *SVG {
	return &SVG{
		width:     width,
		height:    height,
		transform: viewport.Identity(),
		index:     map[string]int{},
		animate:   animate,
	}
}

func (s *SVG) Clear() {
	s.markers = nil
	s.index = map[string]int{}
	s.transform = viewport.Identity()
}

func (s *SVG) DrawMap(t viewport.Transform) { s.transform = t }

func (s *SVG) DrawMarker(m Marker) {
	if _, dup := s.index[m.ID]; !dup {
		s.index[m.ID] = len(s.markers)
	}
	s.markers = append(s.markers, m)
}

func (s *SVG) UpdateMarkers(t viewport.Transform, markers []Marker) {
	s.transform = t
	s.markers = markers
	s.index = make(map[string]int, len(markers))
	for i, m := range markers {
		if _, dup := s.index[m.ID]; !dup {
			s.index[m.ID] = i
		}
	}
}

func (s *SVG) HighlightMarker(m Marker) {
	if i, ok := s.index[m.ID]; ok {
		s.markers[i] = m
	}
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	fmt.Fprintf(&b, `<g class="map" transform="%s">`+"\n", s.transform)
	fmt.Fprintf(&b, `<rect class="ocean" width="%s" height="%s" fill="%s"/>`+"\n", num(s.width), num(s.height), oceanFill)
	for _, m := range s.markers {
		s.writeMarker(&b, m)
	}
	b.WriteString("</g>\n</svg>\n")
	return b.WriteTo(w)
}

func (s *SVG) writeMarker(b *bytes.Buffer, m Marker) {
	fmt.Fprintf(b, `<circle id="%s" class="%s" cx="%s" cy="%s" r="%s" fill="%s">`,
		html.EscapeString(m.ID), m.Category.Slug(), num(m.Base.X), num(m.Base.Y), num(m.Radius), html.EscapeString(m.Fill))
	fmt.Fprintf(b, `<title>%s</title>`, html.EscapeString(m.Tooltip.String()))
	if s.animate {
		frames := GrowKeyframes(m.Radius, growSteps)
		values := make([]string, len(frames))
		for i, v := range frames {
			values[i] = num(v)
		}
		fmt.Fprintf(b, `<animate attributeName="r" dur="%ss" values="%s" fill="freeze"/>`,
			num(float64(growDuration)), strings.Join(values, ";"))
	}
	b.WriteString("</circle>\n")
}

// GrowKeyframes samples an eased growth from zero to radius at steps evenly
// spaced instants over the grow duration. The first frame is 0 and the last
// is radius.
func GrowKeyframes(radius float64, steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	tween := gween.New(0, float32(radius), growDuration, ease.InOutCubic)
	dt := growDuration / float32(steps)

	frames := make([]float64, 0, steps+1)
	frames = append(frames, 0)
	for i := 1; i < steps; i++ {
		v, _ := tween.Update(dt)
		frames = append(frames, float64(v))
	}
	return append(frames, radius)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

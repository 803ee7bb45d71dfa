package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/domain"
)

// Tooltip is the hover payload of a marker.
type Tooltip struct {
	Category string  `json:"category" yaml:"category"`
	Color    string  `json:"color" yaml:"color"`
	Date     string  `json:"date" yaml:"date"`
	Time     string  `json:"time,omitempty" yaml:"time,omitempty"`
	Severity float64 `json:"severity" yaml:"severity"`
}

// NewTooltip builds the tooltip of ev.
func NewTooltip(ev domain.Event) Tooltip {
	return Tooltip{
		Category: ev.Category.String(),
		Color:    ev.Color,
		Date:     ev.Date,
		Time:     ev.Time,
		Severity: ev.Severity,
	}
}

// Lines returns the tooltip rows. The time row is omitted when empty.
func (t Tooltip) Lines() []string {
	lines := []string{t.Category, "Date: " + t.Date}
	if t.Time != "" {
		lines = append(lines, "Time: "+t.Time)
	}
	return append(lines, fmt.Sprintf("Severity: %.2f", t.Severity))
}

// HTML renders the tooltip markup with the category name in its color.
func (t Tooltip) HTML() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<type><font color="%s">%s</font></type>`, html.EscapeString(t.Color), html.EscapeString(t.Category))
	for _, line := range t.Lines()[1:] {
		b.WriteString("<br/>")
		b.WriteString(html.EscapeString(line))
	}
	return b.String()
}

func (t Tooltip) String() string {
	return strings.Join(t.Lines(), "\n")
}

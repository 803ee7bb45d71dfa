package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowKeyframes(t *testing.T) {
	frames := GrowKeyframes(8, 10)

	require.Len(t, frames, 11)
	assert.Zero(t, frames[0])
	assert.Equal(t, 8.0, frames[10])
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i], frames[i-1], "frame %d", i)
	}
	assert.Less(t, frames[1], 1.0, "eases in slowly")

	assert.Equal(t, []float64{0, 2}, GrowKeyframes(2, 0))
}

func TestSVG_WriteTo(t *testing.T) {
	svg := NewSVG(960, 500, true)
	o := NewOrchestrator(svg, observability.NewMetricsForTesting())
	engine := newEngine(t)
	ev := newEvent(t, domain.VolcanicEruption, "8/5/1902", "", 4, 0, 0)

	o.Rebuild([]domain.Event{ev}, engine)
	engine.ZoomTo(2)
	o.Retransform(engine)
	_, err := o.Hover(ev.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := svg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="960" height="500"`))
	assert.Contains(t, out, `<g class="map" transform="translate(-480,-250) scale(2)">`)
	assert.Contains(t, out, `<circle id="`+ev.ID+`" class="volcanic_eruption" cx="480" cy="250" r="2" fill="#7c0000">`)
	assert.Contains(t, out, "<title>Volcanic Eruption\nDate: 8/5/1902\nSeverity: 4.00</title>")
	assert.Contains(t, out, `<animate attributeName="r" dur="0.5s" values="0;`)
	assert.True(t, strings.HasSuffix(out, "</g>\n</svg>\n"))
}

func TestSVG_NoAnimation(t *testing.T) {
	svg := NewSVG(100, 50, false)
	o := NewOrchestrator(svg, observability.NewMetricsForTesting())
	o.Rebuild([]domain.Event{newEvent(t, domain.Tsunami, "01/01/2000", "", 3, 0, 0)}, newEngine(t))

	var buf bytes.Buffer
	_, err := svg.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<animate")
	assert.Contains(t, buf.String(), `fill="blue"`)
}

func TestEncode(t *testing.T) {
	rec := NewRecorder()
	o := NewOrchestrator(rec, observability.NewMetricsForTesting())
	o.Rebuild([]domain.Event{newEvent(t, domain.Earthquake, "15/01/1990", "12:00", 6.5, 0, 0)}, newEngine(t))
	frame := rec.Flush()
	assert.Empty(t, rec.Commands())

	var js bytes.Buffer
	require.NoError(t, Encode(&js, frame, FormatJSON))
	assert.Contains(t, js.String(), `"category":"earthquake"`)
	assert.Contains(t, js.String(), `"severity":6.5`)
	assert.Equal(t, 1, strings.Count(js.String(), "\n"), "one frame per line")

	var ym bytes.Buffer
	require.NoError(t, Encode(&ym, frame, FormatYAML))
	assert.Contains(t, ym.String(), "category: earthquake")
	assert.Contains(t, ym.String(), "15/01/1990")

	require.ErrorIs(t, Encode(&ym, frame, FormatSVG), ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"JSON": FormatJSON, "yml": FormatYAML, " yaml ": FormatYAML, "svg": FormatSVG} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("png")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

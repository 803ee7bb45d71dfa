package app

import (
	"testing"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"", Command{}},
		{"   # comment", Command{}},
		{"reset", Command{Name: "reset", Args: []string{}}},
		{"  ZOOM   in ", Command{Name: "zoom", Args: []string{"in"}}},
		{"toggle volcanic_eruption on", Command{Name: "toggle", Args: []string{"volcanic_eruption", "on"}}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.line))
		})
	}
	assert.Equal(t, "pan -10 5", ParseCommand("pan  -10   5").String())
}

func TestExec(t *testing.T) {
	st, _ := newState(t, seededStore(t), DefaultOptions())
	st.CategoryReady(domain.Earthquake)
	st.CategoryReady(domain.Tsunami)

	run := func(line string) Result {
		t.Helper()
		res, err := st.Exec(ParseCommand(line))
		require.NoError(t, err, line)
		assert.Empty(t, res.Error)
		return res
	}

	res := run("year 1990")
	assert.Equal(t, "year 1990", res.Command)
	assert.Equal(t, 1990, res.State.Year)

	res = run("toggle earthquake on")
	assert.Len(t, res.State.Markers, 2)
	res = run("toggle Tsunami 1")
	assert.Len(t, res.State.Markers, 3)
	res = run("toggle tsunami off")
	assert.Len(t, res.State.Markers, 2)

	res = run("preview 2001")
	assert.Equal(t, "2001", res.Label)

	res = run("zoom in")
	require.NotNil(t, res.Changed)
	assert.True(t, *res.Changed)
	assert.InDelta(t, 1.2, res.State.Transform.Scale, 1e-12)

	res = run("zoom 20")
	assert.Equal(t, 8.0, res.State.Transform.Scale)
	res = run("zoom +")
	assert.False(t, *res.Changed)

	run("pan -50 -25")
	run("wheel 10 10 0.5")
	res = run("resize 800 400")
	assert.Equal(t, 800.0, res.State.Width)
	assert.Equal(t, uint64(2), res.State.Generation)

	res = run("reset")
	assert.Equal(t, 1.0, res.State.Transform.Scale)

	run("year 1990")
	id := st.Snapshot().Markers[0].ID
	res = run("hover " + id)
	require.NotNil(t, res.Tooltip)
	assert.Equal(t, "Earthquake", res.Tooltip.Category)
	run("unhover " + id)
	run("state")
	run("")
}

func TestExec_Errors(t *testing.T) {
	st, _ := newState(t, seededStore(t), DefaultOptions())

	tests := []struct {
		line string
		want error
	}{
		{"fly away", ErrUnknownCommand},
		{"year", ErrBadArguments},
		{"year nineteen", ErrBadArguments},
		{"year 1800", ErrYearOutOfRange},
		{"preview 1800", ErrYearOutOfRange},
		{"toggle earthquake", ErrBadArguments},
		{"toggle earthquake maybe", ErrBadArguments},
		{"toggle lava on", domain.ErrUnknownCategory},
		{"toggle earthquake on", ErrCategoryUnavailable},
		{"zoom", ErrBadArguments},
		{"zoom sideways", ErrBadArguments},
		{"pan 1", ErrBadArguments},
		{"pan 1 x", ErrBadArguments},
		{"wheel 1 2", ErrBadArguments},
		{"wheel 1 2 x", ErrBadArguments},
		{"pan NaN 0", ErrBadArguments},
		{"pan 0 -Inf", ErrBadArguments},
		{"wheel NaN 0 2", ErrBadArguments},
		{"wheel 10 10 +Inf", ErrBadArguments},
		{"zoom NaN", ErrBadArguments},
		{"resize Inf 10", ErrBadArguments},
		{"resize 0 10", nil},
		{"hover", ErrBadArguments},
		{"hover nope", nil},
		{"unhover", ErrBadArguments},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res, err := st.Exec(ParseCommand(tt.line))
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
			assert.Equal(t, err.Error(), res.Error)
			assert.Equal(t, 1918, res.State.Year, "failed commands leave the state alone")
		})
	}
}

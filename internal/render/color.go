package render

import (
	"fmt"
	"math"
	"strings"
)

// highlightDarkness is the number of darkening steps applied on hover.
const highlightDarkness = 2

var namedColors = map[string][3]uint8{
	"brown": {165, 42, 42},
	"blue":  {0, 0, 255},
	"grey":  {128, 128, 128},
	"gray":  {128, 128, 128},
	"red":   {255, 0, 0},
}

// HighlightColor is the hover fill for a category color.
func HighlightColor(color string) string {
	return Darker(color, highlightDarkness)
}

// Darker scales each RGB channel of a named or #rrggbb color by 0.7^k,
// truncating, and returns it as #rrggbb. Unknown colors are returned as is.
func Darker(color string, k float64) string {
	rgb, ok := parseColor(color)
	if !ok {
		return color
	}
	f := math.Pow(0.7, k)
	for i, c := range rgb {
		rgb[i] = uint8(math.Min(255, float64(c)*f))
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

func parseColor(s string) ([3]uint8, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if rgb, ok := namedColors[s]; ok {
		return rgb, true
	}
	var rgb [3]uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &rgb[0], &rgb[1], &rgb[2]); err == nil {
			return rgb, true
		}
	}
	return rgb, false
}

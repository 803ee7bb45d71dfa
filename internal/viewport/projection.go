package viewport

import "math"

// Point is a position in projection (base) or screen coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Projection is an equirectangular projection of longitude/latitude degrees
// onto a viewport, with the whole world's height fitting the viewport height.
type Projection struct {
	Scale  float64 `json:"scale" yaml:"scale"`
	Center Point   `json:"center" yaml:"center"`
}

// Equirectangular returns the projection for a width x height viewport:
// scale height/π, origin at the viewport center.
func Equirectangular(width, height float64) Projection {
	return Projection{
		Scale:  height / math.Pi,
		Center: Point{X: width / 2, Y: height / 2},
	}
}

// Project converts degrees to base coordinates. Y grows downward.
func (p Projection) Project(lon, lat float64) Point {
	return Point{
		X: p.Center.X + p.Scale*lon*math.Pi/180,
		Y: p.Center.Y - p.Scale*lat*math.Pi/180,
	}
}

// Invert converts base coordinates back to degrees.
func (p Projection) Invert(pt Point) (lon, lat float64) {
	if p.Scale == 0 {
		return math.NaN(), math.NaN()
	}
	lon = (pt.X - p.Center.X) / p.Scale * 180 / math.Pi
	lat = (p.Center.Y - pt.Y) / p.Scale * 180 / math.Pi
	return lon, lat
}

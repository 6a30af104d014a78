package convert

import (
	"fmt"
	"math"

	"github.com/benoitkugler/svg2glif/svgdoc"
	"github.com/srwiley/rasterx"
)

// Mapper converts points from SVG space (origin top left, y down, px)
// to font space (origin on the baseline, y up, font units).
type Mapper struct {
	Height  float64 // height of the drawing
	Descent float64
	Scale   float64 // font units per px
}

// NewMapper returns the mapper for a drawing of the given height.
func NewMapper(height, descent, emSize float64) (Mapper, error) {
	if !(height > 0) {
		return Mapper{}, fmt.Errorf("%w: height must be positive, got %g", svgdoc.ErrMalformedInput, height)
	}
	return Mapper{Height: height, Descent: descent, Scale: emSize / height}, nil
}

// Map applies the transform t then converts to font space.
func (m Mapper) Map(t rasterx.Matrix2D, x, y float64) (float64, float64) {
	return MapPoint(t, x, y, m.Height, m.Descent, m.Scale)
}

// MapPoint applies t to (x, y), flips the y axis around height - descent
// and scales by scale. Coordinates are rounded to integers.
func MapPoint(t rasterx.Matrix2D, x, y, height, descent, scale float64) (float64, float64) {
	tx, ty := t.Transform(x, y)
	return round(tx * scale), round((height - descent - ty) * scale)
}

// round rounds half away from zero, without returning -0
func round(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		return 0
	}
	return r
}

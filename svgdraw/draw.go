// Given a converted glyph, implements how to
// draw its outline.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"math"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any glyph knowledge.
// Points are given in the target space.
type Drawer interface {
	Clear()
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

var (
	_ Drawer = (*rasterx.Filler)(nil)
	_ Drawer = (*BoundingBox)(nil)
)

// ToFixed converts a point to fixed precision.
func ToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}

// FromFixed is the inverse of ToFixed.
func FromFixed(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// DrawGlyph replays the contours of g on drawer, mapping
// font units to the target space with m.
// Off-curve points are grouped by pairs into cubic curves;
// a lone off-curve point is drawn as a degenerate cubic.
// Closed contours wrap around to their first point.
func DrawGlyph(drawer Drawer, g *glif.Glyph, m rasterx.Matrix2D) {
	for _, c := range g.Contours {
		drawContour(drawer, c, m)
	}
}

func drawContour(drawer Drawer, c glif.Contour, m rasterx.Matrix2D) {
	first := -1
	for i, p := range c.Points {
		if p.Type != glif.OffCurve {
			first = i
			break
		}
	}
	if first == -1 { // nothing to anchor the contour
		return
	}
	pt := func(p glif.Point) fixed.Point26_6 { return ToFixed(m.Transform(p.X, p.Y)) }

	n := len(c.Points)
	drawer.Start(pt(c.Points[first]))
	var pending []fixed.Point26_6
	segment := func(to fixed.Point26_6) {
		switch len(pending) {
		case 0:
			drawer.Line(to)
		case 1:
			drawer.CubeBezier(pending[0], pending[0], to)
		default:
			drawer.CubeBezier(pending[len(pending)-2], pending[len(pending)-1], to)
		}
		pending = pending[:0]
	}
	for k := 1; k < n; k++ {
		i := first + k
		if i >= n {
			if c.Open { // no wrap for open contours
				break
			}
			i -= n
		}
		p := c.Points[i]
		if p.Type == glif.OffCurve {
			pending = append(pending, pt(p))
			continue
		}
		segment(pt(p))
	}
	if !c.Open && len(pending) != 0 {
		segment(pt(c.Points[first]))
	}
	drawer.Stop(!c.Open)
}

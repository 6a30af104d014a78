package convert

import (
	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgpath"
	"github.com/srwiley/rasterx"
)

// contourBuilder accumulates the points of the current contour
type contourBuilder struct {
	mapper  Mapper
	t       rasterx.Matrix2D
	current []glif.Point
	out     []glif.Contour
}

func (b *contourBuilder) add(p [2]float64, typ glif.PointType, smooth, start bool) {
	x, y := b.mapper.Map(b.t, p[0], p[1])
	b.current = append(b.current, glif.Point{X: x, Y: y, Type: typ, Smooth: smooth, Start: start})
}

// flush ends the current contour, if any.
func (b *contourBuilder) flush(closed bool) {
	if len(b.current) == 0 {
		return
	}
	b.out = append(b.out, glif.Contour{Points: b.current, Open: !closed})
	b.current = nil
}

// contours converts a path into glyph contours, mapping every point
// with t then m. Quadratic segments are dropped; their number is returned.
func contours(path svgpath.Path, t rasterx.Matrix2D, m Mapper) (out []glif.Contour, droppedQuads int) {
	b := contourBuilder{mapper: m, t: t}
	for _, op := range path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			b.flush(false)
			b.add(op, glif.Line, false, true)
		case svgpath.LineTo:
			b.add(op, glif.Line, false, false)
		case svgpath.CubicTo:
			b.add(op[0], glif.OffCurve, false, false)
			b.add(op[1], glif.OffCurve, false, false)
			b.add(op[2], glif.Curve, true, false)
		case svgpath.QuadTo:
			droppedQuads++
		case svgpath.Close:
			b.flush(true)
		}
	}
	b.flush(false)

	// the closing point duplicates the start point
	for i, c := range b.out {
		if len(c.Points) <= 1 {
			continue
		}
		first, last := c.Points[0], c.Points[len(c.Points)-1]
		if first.X == last.X && first.Y == last.Y {
			b.out[i].Points = c.Points[:len(c.Points)-1]
			b.out[i].Open = false
		}
	}
	return b.out, droppedQuads
}

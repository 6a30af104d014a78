package svgdraw

import (
	"math"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// BoundingBox is a Drawer accumulating the exact extent
// of the drawn outlines, curve extrema included.
type BoundingBox struct {
	Rect    fixed.Rectangle26_6
	a       fixed.Point26_6 // current point
	started bool
}

func (b *BoundingBox) Clear() { *b = BoundingBox{} }

// Empty is true if nothing has been drawn.
func (b *BoundingBox) Empty() bool { return !b.started }

func (b *BoundingBox) add(r fixed.Rectangle26_6) {
	if !b.started {
		b.Rect, b.started = r, true
		return
	}
	b.Rect = b.Rect.Union(r)
}

func (b *BoundingBox) Start(a fixed.Point26_6) {
	b.add(fixed.Rectangle26_6{Min: a, Max: a}) // degenerate case
	b.a = a
}

func (b *BoundingBox) Line(to fixed.Point26_6) {
	b.add(computeBoundingBox(line{b.a, to}))
	b.a = to
}

func (b *BoundingBox) CubeBezier(c1, c2, to fixed.Point26_6) {
	b.add(computeBoundingBox(cubicBezier{b.a, c1, c2, to}))
	b.a = to
}

func (b *BoundingBox) Stop(bool) {}

// Rect is a rectangle in font units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

func (r Rect) union(x, y float64) Rect {
	return Rect{
		MinX: math.Min(r.MinX, x), MinY: math.Min(r.MinY, y),
		MaxX: math.Max(r.MaxX, x), MaxY: math.Max(r.MaxY, y),
	}
}

// Bounds returns the bounding box of the contours of g,
// or false if g has no drawable contour.
func Bounds(g *glif.Glyph) (Rect, bool) {
	var bb BoundingBox
	DrawGlyph(&bb, g, rasterx.Identity)
	if bb.Empty() {
		return Rect{}, false
	}
	minX, minY := FromFixed(bb.Rect.Min)
	maxX, maxY := FromFixed(bb.Rect.Max)
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true
}

// Frame returns the area used to display g: the advance box
// (from the origin), extended to the outline and the anchors.
func Frame(g *glif.Glyph) Rect {
	frame := Rect{MaxX: g.Advance.Width, MaxY: g.Advance.Height}
	if bb, ok := Bounds(g); ok {
		frame = frame.union(bb.MinX, bb.MinY).union(bb.MaxX, bb.MaxY)
	}
	for _, a := range g.Anchors {
		frame = frame.union(a.X, a.Y)
	}
	return frame
}

// the helpers below compute the bounding box of one segment

type line [2]fixed.Point26_6

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := FromFixed(l[0])
	p1x, p1y := FromFixed(l[1])
	return bezierLine(p0x, p1x, t), bezierLine(p0y, p1y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p1x, p1y := FromFixed(cu[0])
	c1x, c1y := FromFixed(cu[1])
	c2x, c2y := FromFixed(cu[2])
	p2x, p2y := FromFixed(cu[3])

	aX, bX, cX := cubicDerivative(p1x, c1x, c2x, p2x)
	aY, bY, cY := cubicDerivative(p1y, c1y, c2y, p2y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := FromFixed(cu[0])
	p1x, p1y := FromFixed(cu[1])
	p2x, p2y := FromFixed(cu[2])
	p3x, p3y := FromFixed(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of bezierSpline, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 { // constant derivative: no extremum
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

func computeBoundingBox(curve bezier) fixed.Rectangle26_6 {
	resX, resY := curve.criticalPoints()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		minX, minY = math.Min(x, minX), math.Min(y, minY)
		maxX, maxY = math.Max(x, maxX), math.Max(y, maxY)
	}
	return fixed.Rectangle26_6{Min: ToFixed(minX, minY), Max: ToFixed(maxX, maxY)}
}

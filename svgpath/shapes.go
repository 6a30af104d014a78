package svgpath

import (
	"math"

	"golang.org/x/image/math/f64"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// Rect returns the path of a rectangle with top left corner (x, y),
// optionally with rounded corners of radii rx and ry.
// A zero width or height draws nothing.
func Rect(x, y, w, h, rx, ry float64) Path {
	if w <= 0 || h <= 0 {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	var p Path
	if rx == 0 || ry == 0 {
		p.Start(f64.Vec2{x, y})
		p.Line(f64.Vec2{x + w, y})
		p.Line(f64.Vec2{x + w, y + h})
		p.Line(f64.Vec2{x, y + h})
		p.Stop(true)
		return p
	}
	p.Start(f64.Vec2{x + rx, y})
	p.Line(f64.Vec2{x + w - rx, y})
	p.addArc(x+w-rx, y, rx, ry, 0, false, true, x+w, y+ry)
	p.Line(f64.Vec2{x + w, y + h - ry})
	p.addArc(x+w, y+h-ry, rx, ry, 0, false, true, x+w-rx, y+h)
	p.Line(f64.Vec2{x + rx, y + h})
	p.addArc(x+rx, y+h, rx, ry, 0, false, true, x, y+h-ry)
	p.Line(f64.Vec2{x, y + ry})
	p.addArc(x, y+ry, rx, ry, 0, false, true, x+rx, y)
	p.Stop(true)
	return p
}

// Ellipse returns the closed path of the ellipse centered at (cx, cy).
// A circle is an ellipse with rx = ry.
// A zero radius draws nothing.
func Ellipse(cx, cy, rx, ry float64) Path {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	var p Path
	p.Start(f64.Vec2{cx + rx, cy})
	p.addArc(cx+rx, cy, rx, ry, 0, false, true, cx, cy+ry)
	p.addArc(cx, cy+ry, rx, ry, 0, false, true, cx-rx, cy)
	p.addArc(cx-rx, cy, rx, ry, 0, false, true, cx, cy-ry)
	p.addArc(cx, cy-ry, rx, ry, 0, false, true, cx+rx, cy)
	p.Stop(true)
	return p
}

// Polyline joins the given points with straight lines,
// closing the path for polygons.
func Polyline(points []f64.Vec2, closed bool) Path {
	if len(points) < 2 {
		return nil
	}
	var p Path
	p.Start(points[0])
	for _, pt := range points[1:] {
		p.Line(pt)
	}
	p.Stop(closed)
	return p
}

// Line returns the open path of the segment.
func Line(x1, y1, x2, y2 float64) Path {
	return Path{MoveTo{x1, y1}, LineTo{x2, y2}}
}

// addArc appends the elliptical arc from the current point (px, py)
// to (x, y), as cubic bezier splices.
// rotX is the rotation of the ellipse x-axis, in degrees.
// The end point is returned.
func (p *Path) addArc(px, py, rx, ry, rotX float64, largeArc, sweep bool, x, y float64) (lx, ly float64) {
	if px == x && py == y { // arc is omitted
		return x, y
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.Line(f64.Vec2{x, y})
		return x, y
	}
	rotX *= math.Pi / 180
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)

	// endpoint to center parameterization
	dx2, dy2 := (px-x)/2, (py-y)/2
	x1p := cosTheta*dx2 + sinTheta*dy2
	y1p := -sinTheta*dx2 + cosTheta*dy2

	// scale up radii which are too small to join the end points
	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	var coef float64
	if num > 0 && den > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp, cyp := coef*rx*y1p/ry, -coef*ry*x1p/rx
	cx := cosTheta*cxp - sinTheta*cyp + (px+x)/2
	cy := sinTheta*cxp + cosTheta*cyp + (py+y)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	etaStart := math.Atan2(uy, ux)
	deltaEta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && deltaEta > 0 {
		deltaEta -= 2 * math.Pi
	} else if sweep && deltaEta < 0 {
		deltaEta += 2 * math.Pi
	}

	segs := int(math.Ceil(math.Abs(deltaEta) / maxDx))
	if segs < 1 {
		segs = 1
	}
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly = px, py
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = x, y // Just makes the end point exact; no roundoff error
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		p.CubeBezier(f64.Vec2{lx + alpha*ldx, ly + alpha*ldy},
			f64.Vec2{px - alpha*dx, py - alpha*dy}, f64.Vec2{px, py})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return lx, ly
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

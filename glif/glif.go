// Package glif implements the glyph records of the
// Unified Font Object format (UFO 3), and their serialization
// as GLIF (format 2) files grouped in a glyphs directory.
package glif

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidName is returned for empty glyph or anchor names,
// and names containing control characters.
var ErrInvalidName = errors.New("invalid name")

// PointType is the segment type of a contour point.
type PointType uint8

const (
	OffCurve PointType = iota // control point of a cubic curve
	Line                      // on-curve corner point
	Curve                     // on-curve point ending a cubic curve
)

func (pt PointType) String() string {
	switch pt {
	case Line:
		return "line"
	case Curve:
		return "curve"
	default:
		return "offcurve"
	}
}

// Point is a point of a contour, in font units.
type Point struct {
	X, Y   float64
	Type   PointType
	Smooth bool
	Start  bool // the point started the contour (moveto)
}

// Contour is a sequence of points. Points order is significant.
type Contour struct {
	Points []Point
	// Open is true when the source path did not
	// explicitly close the contour.
	Open bool
}

// Anchor is a named position.
type Anchor struct {
	X, Y float64
	Name string
}

// Advance stores the advance width and height of a glyph.
type Advance struct {
	Width, Height float64
}

// Glyph is a glyph record.
type Glyph struct {
	Name     string
	Advance  Advance
	Unicodes []rune
	Contours []Contour
	Anchors  []Anchor
}

// ValidName returns an error wrapping ErrInvalidName
// if name is empty or contains control characters.
func ValidName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w %q: control character %U", ErrInvalidName, name, r)
		}
	}
	return nil
}

// PointCount returns the total number of points of the glyph outline.
func (g *Glyph) PointCount() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c.Points)
	}
	return n
}

package glif

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// formatNumber writes v without trailing zeros.
func formatNumber(v float64) string {
	if v == 0 { // avoid -0
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) attr(name, value string) {
	e.buf.WriteByte(' ')
	e.buf.WriteString(name)
	e.buf.WriteString(`="`)
	xml.EscapeText(&e.buf, []byte(value)) // never fails on a bytes.Buffer
	e.buf.WriteByte('"')
}

// startPointType returns the type written for the first point of a contour.
// A closed contour starting with a corner preceded by off-curve points
// would be invalid GLIF, so the curve type is used instead.
func startPointType(c Contour) string {
	if c.Open {
		return "move"
	}
	if c.Points[len(c.Points)-1].Type == OffCurve {
		return "curve"
	}
	return "line"
}

func (e *encoder) point(p Point, typ string) {
	e.buf.WriteString("      <point")
	e.attr("x", formatNumber(p.X))
	e.attr("y", formatNumber(p.Y))
	if typ != "" {
		e.attr("type", typ)
	}
	if p.Smooth && p.Type != OffCurve {
		e.attr("smooth", "yes")
	}
	e.buf.WriteString("/>\n")
}

func (e *encoder) contour(c Contour) {
	e.buf.WriteString("    <contour>\n")
	for i, p := range c.Points {
		var typ string
		switch {
		case i == 0 && p.Type != OffCurve:
			typ = startPointType(c)
		case p.Type != OffCurve:
			typ = p.Type.String()
		}
		e.point(p, typ)
	}
	e.buf.WriteString("    </contour>\n")
}

// Marshal returns the GLIF (format 2) encoding of g.
func Marshal(g *Glyph) ([]byte, error) {
	if err := ValidName(g.Name); err != nil {
		return nil, fmt.Errorf("glyph name: %w", err)
	}
	for _, a := range g.Anchors {
		if err := ValidName(a.Name); err != nil {
			return nil, fmt.Errorf("anchor name: %w", err)
		}
		if !finite(a.X, a.Y) {
			return nil, fmt.Errorf("anchor %q: invalid position (%g, %g)", a.Name, a.X, a.Y)
		}
	}
	for i, c := range g.Contours {
		if len(c.Points) == 0 {
			return nil, fmt.Errorf("contour %d is empty", i)
		}
		for j, p := range c.Points {
			if !finite(p.X, p.Y) {
				return nil, fmt.Errorf("contour %d, point %d: invalid position (%g, %g)", i, j, p.X, p.Y)
			}
		}
	}
	if !finite(g.Advance.Width, g.Advance.Height) {
		return nil, fmt.Errorf("invalid advance (%g, %g)", g.Advance.Width, g.Advance.Height)
	}

	var e encoder
	e.buf.WriteString(xmlHeader)
	e.buf.WriteString("<glyph")
	e.attr("name", g.Name)
	e.attr("format", "2")
	e.buf.WriteString(">\n")

	if g.Advance.Width != 0 || g.Advance.Height != 0 {
		e.buf.WriteString("  <advance")
		if g.Advance.Width != 0 {
			e.attr("width", formatNumber(g.Advance.Width))
		}
		if g.Advance.Height != 0 {
			e.attr("height", formatNumber(g.Advance.Height))
		}
		e.buf.WriteString("/>\n")
	}
	for _, u := range g.Unicodes {
		e.buf.WriteString("  <unicode")
		e.attr("hex", fmt.Sprintf("%04X", u))
		e.buf.WriteString("/>\n")
	}
	for _, a := range g.Anchors {
		e.buf.WriteString("  <anchor")
		e.attr("x", formatNumber(a.X))
		e.attr("y", formatNumber(a.Y))
		e.attr("name", a.Name)
		e.buf.WriteString("/>\n")
	}
	if len(g.Contours) != 0 {
		e.buf.WriteString("  <outline>\n")
		for _, c := range g.Contours {
			e.contour(c)
		}
		e.buf.WriteString("  </outline>\n")
	}
	e.buf.WriteString("</glyph>\n")
	return e.buf.Bytes(), nil
}

// Encode writes the GLIF (format 2) encoding of g to w.
func Encode(w io.Writer, g *Glyph) error {
	b, err := Marshal(g)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

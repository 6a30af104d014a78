package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/parse/v2/strconv"
)

// ErrMalformedTransform is returned for transform attributes
// which can't be parsed.
var ErrMalformedTransform = errors.New("malformed transform")

var errParamMismatch = errors.New("param mismatch")

// ParseNumbers reads a list of numbers separated by
// commas and/or whitespace. Numbers may also be packed,
// as in "1-2" or ".5.5".
func ParseNumbers(s string) ([]float64, error) {
	var (
		out []float64
		b   = []byte(s)
		pos int
	)
	for {
		for pos < len(b) && isSeparator(b[pos]) {
			pos++
		}
		if pos >= len(b) {
			return out, nil
		}
		f, l := strconv.ParseFloat(b[pos:])
		if l == 0 {
			return nil, fmt.Errorf("invalid number at position %d in %q", pos, s)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("number out of range at position %d in %q", pos, s)
		}
		out = append(out, f)
		pos += l
	}
}

func readTransformAttr(m1 rasterx.Matrix2D, k string, points []float64) (rasterx.Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(rasterx.Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, fmt.Errorf("unknown transform %q", k)
	}
	return m1, nil
}

// ParseTransform parses the value of a transform attribute.
// The transforms of the list are composed left to right, so that
// the last one is applied first to the coordinates.
// An empty value is the identity.
func ParseTransform(v string) (rasterx.Matrix2D, error) {
	m1 := rasterx.Identity
	rest := v
	for {
		rest = strings.TrimLeft(rest, ", \t\n\r\f")
		if rest == "" {
			return m1, nil
		}
		// each function must be closed by its own parenthesis
		open, end := strings.IndexByte(rest, '('), strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return rasterx.Identity, fmt.Errorf("%w: %q", ErrMalformedTransform, v) // badly formed transformation
		}
		name, args := strings.TrimSpace(rest[:open]), rest[open+1:end]
		t := rest[:end+1]
		rest = rest[end+1:]

		points, err := ParseNumbers(args)
		if err != nil {
			return rasterx.Identity, fmt.Errorf("%w: %s", ErrMalformedTransform, err)
		}
		m1, err = readTransformAttr(m1, strings.ToLower(name), points)
		if err != nil {
			return rasterx.Identity, fmt.Errorf("%w %q: %s", ErrMalformedTransform, t, err)
		}
	}
}

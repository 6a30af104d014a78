package svgdoc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// ErrUnsupportedUnit is returned for lengths expressed in other
// units than px.
var ErrUnsupportedUnit = errors.New("unsupported length unit")

// ParseLength parses an SVG length, which must be
// unitless or in px.
func ParseLength(v string) (float64, error) {
	v = strings.TrimSpace(v)
	f, n := strconv.ParseFloat([]byte(v))
	if n == 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: invalid length %q", ErrMalformedInput, v)
	}
	switch unit := strings.TrimSpace(v[n:]); unit {
	case "", "px":
		return f, nil
	case "%", "em", "ex", "pt", "pc", "cm", "mm", "in":
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	default:
		return 0, fmt.Errorf("%w: invalid length %q", ErrMalformedInput, v)
	}
}

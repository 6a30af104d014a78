package svgpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func TestParsePath(t *testing.T) {
	for _, test := range []struct {
		d    string
		want Path
	}{
		{"", nil},
		{"M10 10 L20 10 Z", Path{MoveTo{10, 10}, LineTo{20, 10}, Close{}}},
		{"m10 10 l10 0 h5 v5 z", Path{MoveTo{10, 10}, LineTo{20, 10}, LineTo{25, 10}, LineTo{25, 15}, Close{}}},
		{"M10,10H0V0", Path{MoveTo{10, 10}, LineTo{0, 10}, LineTo{0, 0}}},
		{"M1-2", Path{MoveTo{1, -2}}},
		{"M.5.5", Path{MoveTo{0.5, 0.5}}},
		{"M1e1 2E-1", Path{MoveTo{10, 0.2}}},
		{"M0 0 1 1 2 2", Path{MoveTo{0, 0}, LineTo{1, 1}, LineTo{2, 2}}},
		{"m1 1 2 2", Path{MoveTo{1, 1}, LineTo{3, 3}}},
		{"M0 0 L1 1 2 2", Path{MoveTo{0, 0}, LineTo{1, 1}, LineTo{2, 2}}},
		{"M10 10 L20 20 Z l5 0", Path{MoveTo{10, 10}, LineTo{20, 20}, Close{}, MoveTo{10, 10}, LineTo{15, 10}}},
		{"M0 0 L1 1 Z Z", Path{MoveTo{0, 0}, LineTo{1, 1}, Close{}, Close{}}},
		{"M0 0 c1 2 3 4 5 6", Path{MoveTo{0, 0}, CubicTo{{1, 2}, {3, 4}, {5, 6}}}},
		{
			"M0 0 C10 0 20 10 20 20 S30 40 40 40",
			Path{MoveTo{0, 0}, CubicTo{{10, 0}, {20, 10}, {20, 20}}, CubicTo{{20, 30}, {30, 40}, {40, 40}}},
		},
		{
			"M0 0 S10 10 20 0",
			Path{MoveTo{0, 0}, CubicTo{{0, 0}, {10, 10}, {20, 0}}},
		},
		{
			"M0 0 Q10 10 20 0 S30 10 40 0",
			Path{MoveTo{0, 0}, QuadTo{{10, 10}, {20, 0}}, CubicTo{{20, 0}, {30, 10}, {40, 0}}},
		},
		{
			"M0 0 Q10 10 20 0 T40 0",
			Path{MoveTo{0, 0}, QuadTo{{10, 10}, {20, 0}}, QuadTo{{30, -10}, {40, 0}}},
		},
		{
			"M0 0 t10 0",
			Path{MoveTo{0, 0}, QuadTo{{0, 0}, {10, 0}}},
		},
		{"M0 0 A0 10 0 0 1 20 0", Path{MoveTo{0, 0}, LineTo{20, 0}}},
		{"M5 5 A10 10 0 0 1 5 5", Path{MoveTo{5, 5}}},
	} {
		got, err := ParsePath(test.d)
		require.NoError(t, err, test.d)
		assert.Equal(t, test.want, got, test.d)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, test := range []struct {
		d      string
		offset int
	}{
		{"M10", 3},
		{"L10 10", 0},
		{"M0 0 X", 5},
		{"M0 0 L1", 7},
		{"M0 0 A1 1 0 2 1 3 3", 12},
		{"M0 0 C 1 2 3 4 5 #", 17},
		{"M0 0 L1e999 0", 6},
		{"M-1e999 0", 1},
	} {
		_, err := ParsePath(test.d)
		require.Error(t, err, test.d)
		assert.True(t, errors.Is(err, ErrMalformedPath), test.d)

		var se *SyntaxError
		require.True(t, errors.As(err, &se), test.d)
		assert.Equal(t, test.offset, se.Offset, test.d)
	}
}

func TestParseArc(t *testing.T) {
	for _, d := range []string{
		"M0 0 A10 10 0 0 1 20 0",
		"M0 0 a10 10 0 0120 0",
		"M0 0 A1 1 0 0 1 20 0", // radii scaled up
	} {
		p, err := ParsePath(d)
		require.NoError(t, err, d)
		require.Len(t, p, 9, d) // half circle: 8 splices of pi/8
		for _, op := range p[1:] {
			assert.IsType(t, CubicTo{}, op)
		}
		// end point is exact
		assert.Equal(t, f64.Vec2{20, 0}, p[8].(CubicTo)[2])
		// positive sweep goes through the top of the circle
		mid := p[4].(CubicTo)[2]
		assert.InDelta(t, 10, mid[0], 1e-9)
		assert.InDelta(t, -10, mid[1], 1e-9)
	}

	p, err := ParsePath("M0 0 A10 10 0 0 0 20 0")
	require.NoError(t, err)
	mid := p[4].(CubicTo)[2]
	assert.InDelta(t, 10, mid[1], 1e-9)
}

func TestLargeArc(t *testing.T) {
	// quarter of a circle centered at (0, 0), then the 3 other quarters
	small, err := ParsePath("M10 0 A10 10 0 0 1 0 10")
	require.NoError(t, err)
	large, err := ParsePath("M10 0 A10 10 0 1 0 0 10")
	require.NoError(t, err)
	assert.Len(t, small, 1+4)
	assert.GreaterOrEqual(t, len(large), 1+12)
	assert.Equal(t, f64.Vec2{0, 10}, large[len(large)-1].(CubicTo)[2])
}

func TestToSVGPath(t *testing.T) {
	p := Path{MoveTo{0, 1}, LineTo{2, 3}, QuadTo{{4, 5}, {6, 7}}, CubicTo{{1, 2}, {3, 4}, {5.5, 6}}, Close{}}
	assert.Equal(t, "M0,1 L2,3 Q4,5,6,7 C1,2,3,4,5.5,6 Z", p.ToSVGPath())

	back, err := ParsePath(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

package convert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgdoc"
	"github.com/benoitkugler/svg2glif/svgpath"
	"github.com/google/go-cmp/cmp"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func svgDoc(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<svg width="100" height="100" xmlns="http://www.w3.org/2000/svg">` + body + `</svg>`
}

func corner(x, y float64) glif.Point { return glif.Point{X: x, Y: y, Type: glif.Line} }

func start(x, y float64) glif.Point { return glif.Point{X: x, Y: y, Type: glif.Line, Start: true} }

func off(x, y float64) glif.Point { return glif.Point{X: x, Y: y, Type: glif.OffCurve} }

func smooth(x, y float64) glif.Point {
	return glif.Point{X: x, Y: y, Type: glif.Curve, Smooth: true}
}

func convertBody(t *testing.T, body string, cfg Config) *glif.Glyph {
	t.Helper()
	g, err := ConvertString(svgDoc(body), cfg, Options{})
	require.NoError(t, err)
	return g
}

func TestSquare(t *testing.T) {
	g := convertBody(t, `<path d="M 10 10 L 90 10 L 90 90 L 10 90 Z"/>`, NewConfig(1000, 0).WithName("square"))
	want := &glif.Glyph{
		Name:    "square",
		Advance: glif.Advance{Width: 1000, Height: 1000},
		Contours: []glif.Contour{{Points: []glif.Point{
			start(100, 900), corner(900, 900), corner(900, 100), corner(100, 100),
		}}},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("unexpected glyph (-want +got):\n%s", diff)
	}
}

func TestDescentNotClamped(t *testing.T) {
	g := convertBody(t, `<path d="M 10 10 L 90 10 L 90 90 L 10 90 Z"/>`, NewConfig(1000, 200))
	require.Len(t, g.Contours, 1)
	var ys []float64
	for _, p := range g.Contours[0].Points {
		ys = append(ys, p.Y)
	}
	assert.Equal(t, []float64{-1100, -1100, -1900, -1900}, ys)
}

func TestGroupTransform(t *testing.T) {
	g := convertBody(t, `<g transform="translate(10,0)"><path d="M 0 0 L 10 0"/></g>`, NewConfig(1000, 0))
	want := []glif.Contour{{Points: []glif.Point{start(100, 1000), corner(200, 1000)}, Open: true}}
	if diff := cmp.Diff(want, g.Contours); diff != "" {
		t.Fatal(diff)
	}
}

func TestTransformComposition(t *testing.T) {
	// the child transform applies first
	g := convertBody(t, `<g transform="translate(10,0)"><path transform="scale(2)" d="M 1 0"/></g>`, NewConfig(1000, 0))
	require.Len(t, g.Contours, 1)
	assert.Equal(t, 120., g.Contours[0].Points[0].X)

	tr, err := svgpath.ParseTransform("translate(10,0)")
	require.NoError(t, err)
	sc, err := svgpath.ParseTransform("scale(2)")
	require.NoError(t, err)
	m := Mapper{Height: 100, Scale: 10}
	x, _ := m.Map(tr.Mult(sc), 1, 0)
	assert.Equal(t, 120., x)
}

func TestAnchors(t *testing.T) {
	g := convertBody(t, `<text x="5" y="5">top</text><text x="1" y="1">  </text><text/>`, NewConfig(1000, 0))
	assert.Equal(t, []glif.Anchor{{X: 50, Y: 950, Name: "top"}}, g.Anchors)

	g = convertBody(t, `<g transform="translate(10,10)"><text x="5 6" y="5">
		to<tspan>p</tspan>
	</text></g>`, NewConfig(1000, 0))
	assert.Equal(t, []glif.Anchor{{X: 150, Y: 850, Name: "top"}}, g.Anchors)

	g = convertBody(t, `<text x="12px" y="bad">e&#x301;</text>`, NewConfig(100, 0))
	assert.Equal(t, []glif.Anchor{{X: 12, Y: 100, Name: "é"}}, g.Anchors)
}

func TestInvalidAnchorName(t *testing.T) {
	body := `<text>a&#x85;b</text><path d="M0 0 L1 1"/>`
	g, err := ConvertString(svgDoc(body), NewConfig(1000, 0), Options{ErrorMode: IgnoreErrorMode})
	require.NoError(t, err)
	assert.Empty(t, g.Anchors)
	assert.Len(t, g.Contours, 1)

	_, err = ConvertString(svgDoc(body), NewConfig(1000, 0), Options{ErrorMode: StrictErrorMode})
	assert.True(t, errors.Is(err, glif.ErrInvalidName))
}

func TestLineCount(t *testing.T) {
	for n := 1; n <= 5; n++ {
		d := "M 0 0"
		for i := 1; i <= n; i++ {
			d += fmt.Sprintf(" L %d %d", i, i*i)
		}
		g := convertBody(t, `<path d="`+d+` Z"/>`, NewConfig(100, 0))
		require.Len(t, g.Contours, 1)
		assert.Len(t, g.Contours[0].Points, n+1)

		// back to the start point: the closing point is elided
		g = convertBody(t, `<path d="`+d+` L 0 0 Z"/>`, NewConfig(100, 0))
		require.Len(t, g.Contours, 1)
		assert.Len(t, g.Contours[0].Points, n+1)
		assert.False(t, g.Contours[0].Open)
	}
}

func TestCubic(t *testing.T) {
	g := convertBody(t, `<path d="M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0"/>`, NewConfig(100, 0))
	want := []glif.Contour{{
		Points: []glif.Point{
			start(0, 100),
			off(0, 90), off(10, 90), smooth(10, 100),
			off(10, 110), off(20, 110), smooth(20, 100),
		},
		Open: true,
	}}
	if diff := cmp.Diff(want, g.Contours); diff != "" {
		t.Fatal(diff)
	}
}

func TestClosedCubicElision(t *testing.T) {
	g := convertBody(t, `<path d="M 0 0 C 0 10 10 10 0 0 Z"/>`, NewConfig(100, 0))
	require.Len(t, g.Contours, 1)
	assert.Equal(t, []glif.Point{start(0, 100), off(0, 90), off(10, 90)}, g.Contours[0].Points)

	b, err := glif.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(b), `<point x="0" y="100" type="curve"/>`)
}

func TestQuadraticDropped(t *testing.T) {
	body := `<path d="M 0 0 Q 5 5 10 0 T 20 0 L 30 0"/>`
	g := convertBody(t, body, NewConfig(100, 0))
	assert.Equal(t, []glif.Point{start(0, 100), corner(30, 100)}, g.Contours[0].Points)

	core, logs := observer.New(zapcore.WarnLevel)
	_, err := ConvertString(svgDoc(body), NewConfig(100, 0), Options{Logger: zap.New(core)})
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, ErrQuadraticSegment.Error(), entry.Message)
	assert.Equal(t, int64(2), entry.ContextMap()["count"])

	_, err = ConvertString(svgDoc(body), NewConfig(100, 0), Options{ErrorMode: StrictErrorMode})
	assert.True(t, errors.Is(err, ErrQuadraticSegment))
}

func TestDegenerateContours(t *testing.T) {
	g := convertBody(t, `<path d="M 10 10 M 20 20 L 30 30 M 40 40 Z Z"/>`, NewConfig(100, 0))
	want := []glif.Contour{
		{Points: []glif.Point{start(10, 90)}, Open: true},
		{Points: []glif.Point{start(20, 80), corner(30, 70)}, Open: true},
		{Points: []glif.Point{start(40, 60)}},
	}
	if diff := cmp.Diff(want, g.Contours); diff != "" {
		t.Fatal(diff)
	}
}

func TestDocumentOrder(t *testing.T) {
	g := convertBody(t, `
		<path d="M 1 1 L 2 2"/>
		<g><path d="M 3 3 L 4 4"/><unknown><path d="M 5 5 L 6 6"/></unknown></g>
		<path d="M 7 7 L 8 8"/>`, NewConfig(100, 0))
	var xs []float64
	for _, c := range g.Contours {
		xs = append(xs, c.Points[0].X)
	}
	assert.Equal(t, []float64{1, 3, 5, 7}, xs)
}

func TestShapes(t *testing.T) {
	body := `<rect x="10" y="10" width="80" height="80"/><circle cx="50" cy="50" r="10"/>`
	g := convertBody(t, body, NewConfig(100, 0))
	assert.Empty(t, g.Contours)

	g, err := ConvertString(svgDoc(body), NewConfig(100, 0), Options{Shapes: true})
	require.NoError(t, err)
	require.Len(t, g.Contours, 2)
	assert.Equal(t, []glif.Point{start(10, 90), corner(90, 90), corner(90, 10), corner(10, 10)}, g.Contours[0].Points)
	assert.Equal(t, 4*4*3, len(g.Contours[1].Points)) // the closing point is elided

	_, err = ConvertString(svgDoc(`<polygon points="1 2 3"/>`), NewConfig(100, 0), Options{Shapes: true})
	assert.True(t, errors.Is(err, svgdoc.ErrMalformedInput))
}

func TestUnicode(t *testing.T) {
	g := convertBody(t, "", NewConfig(1000, 0).WithUnicode("0041"))
	assert.Equal(t, []rune{'A'}, g.Unicodes)

	g = convertBody(t, "", NewConfig(1000, 0).WithUnicode("1F600"))
	assert.Equal(t, []rune{0x1F600}, g.Unicodes)

	g = convertBody(t, "", NewConfig(1000, 0).WithUnicode("zz"))
	assert.Empty(t, g.Unicodes)

	_, err := ConvertString(svgDoc(""), NewConfig(1000, 0).WithUnicode("D800"), Options{ErrorMode: StrictErrorMode})
	assert.True(t, errors.Is(err, ErrInvalidUnicode))
}

func TestName(t *testing.T) {
	g := convertBody(t, "", NewConfig(1000, 0))
	assert.Equal(t, DefaultGlyphName, g.Name)

	_, err := ConvertString(svgDoc(""), NewConfig(1000, 0).WithName("a\tb"), Options{})
	assert.True(t, errors.Is(err, glif.ErrInvalidName))
}

func TestAdvance(t *testing.T) {
	g, err := ConvertString(`<svg width="50" height="200px"/>`, NewConfig(1000, 0), Options{})
	require.NoError(t, err)
	assert.Equal(t, glif.Advance{Width: 250, Height: 1000}, g.Advance)

	g, err = ConvertString(`<svg height="300"/>`, NewConfig(1000, 0), Options{})
	require.NoError(t, err)
	assert.Equal(t, glif.Advance{Width: 333, Height: 1000}, g.Advance)
}

func TestErrors(t *testing.T) {
	for _, test := range []struct {
		svg  string
		cfg  Config
		want error
	}{
		{"<html/>", NewConfig(1000, 0), svgdoc.ErrMalformedInput},
		{"<svg><path></svg>", NewConfig(1000, 0), svgdoc.ErrMalformedInput},
		{`<svg height="0"/>`, NewConfig(1000, 0), svgdoc.ErrMalformedInput},
		{`<svg height="-10"/>`, NewConfig(1000, 0), svgdoc.ErrMalformedInput},
		{`<svg width="10mm"/>`, NewConfig(1000, 0), svgdoc.ErrUnsupportedUnit},
		{`<svg height="1in"/>`, NewConfig(1000, 0), svgdoc.ErrUnsupportedUnit},
		{svgDoc(`<g transform="rotate(1,2)"><path d="M0 0"/></g>`), NewConfig(1000, 0), svgpath.ErrMalformedTransform},
		{svgDoc(`<path d="M0 0 L"/>`), NewConfig(1000, 0), svgpath.ErrMalformedPath},
		{svgDoc(`<path d="M0 0 L1e999 0 L5 5 Z"/>`), NewConfig(1000, 0), svgpath.ErrMalformedPath},
		{svgDoc(`<g transform="translate(10"><path d="M 0 0 L 10 0"/></g>`), NewConfig(1000, 0), svgpath.ErrMalformedTransform},
		{`<svg height="1e999"/>`, NewConfig(1000, 0), svgdoc.ErrMalformedInput},
		{svgDoc(""), NewConfig(0, 0), ErrInvalidConfig},
		{svgDoc(""), NewConfig(-1, 0), ErrInvalidConfig},
	} {
		g, err := ConvertString(test.svg, test.cfg, Options{})
		assert.Nil(t, g)
		assert.True(t, errors.Is(err, test.want), "%s: %v", test.svg, err)
	}

	var se *svgpath.SyntaxError
	_, err := ConvertString(svgDoc(`<path d="M0 0 L 1 x"/>`), NewConfig(1000, 0), Options{})
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 9, se.Offset)
}

func TestIdempotence(t *testing.T) {
	svg := svgDoc(`<g transform="rotate(12) translate(3 4)">
		<path d="M 10 10 C 20 0 30 0 40 10 A 10 15 30 1 0 60 60 Z m 5 5 l 10 0 v 10 z"/>
		<text x="3" y="4">top</text><text x="9" y="9">bottom</text>
	</g>`)
	var outputs []string
	for i := 0; i < 5; i++ {
		g, err := ConvertString(svg, NewConfig(1000, 120).WithUnicode("41"), Options{})
		require.NoError(t, err)
		b, err := glif.Marshal(g)
		require.NoError(t, err)
		outputs = append(outputs, string(b))
	}
	for _, out := range outputs[1:] {
		assert.Equal(t, outputs[0], out)
	}
}

func TestMapPoint(t *testing.T) {
	for _, p := range [][2]float64{{0, 0}, {10, 20}, {-5, 150}, {99, 1}} {
		x, y := MapPoint(rasterx.Identity, p[0], p[1], 100, 0, 1)
		assert.Equal(t, p[0], x)
		assert.Equal(t, 100-p[1], y)
	}

	// half away from zero, no negative zero
	x, y := MapPoint(rasterx.Identity, 0.5, 100.4, 100, 0, 1)
	assert.Equal(t, 1., x)
	assert.False(t, y < 0 || 1/y < 0)

	_, err := NewMapper(0, 0, 1000)
	assert.True(t, errors.Is(err, svgdoc.ErrMalformedInput))
}

func TestConfig(t *testing.T) {
	cfg := NewConfig(1000, 200).WithUnicode("41").WithName("A")
	assert.Equal(t, Config{EmSize: 1000, Descent: 200, Unicode: "41", Name: "A"}, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, NewConfig(0, 0).Validate())
}

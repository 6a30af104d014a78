package convert

import (
	"strings"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgdoc"
	"github.com/benoitkugler/svg2glif/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/text/unicode/norm"
)

// firstCoordinate returns the first value of a text position attribute,
// defaulting to 0 when the attribute is missing or invalid.
func firstCoordinate(n *svgdoc.Node, name string) float64 {
	v, ok := n.Attr(name)
	if !ok {
		return 0
	}
	values, err := svgpath.ParseNumbers(v)
	if err != nil || len(values) == 0 {
		// also try a px length, as in "12px"
		fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
		if len(fields) == 0 {
			return 0
		}
		f, err := svgdoc.ParseLength(fields[0])
		if err != nil {
			return 0
		}
		return f
	}
	return values[0]
}

// anchor converts a text element into an anchor. ok is false
// when the text is blank, which is not an error.
func anchor(n *svgdoc.Node, t rasterx.Matrix2D, m Mapper) (a glif.Anchor, ok bool, err error) {
	name := norm.NFC.String(strings.TrimSpace(n.TextContent()))
	if name == "" {
		return glif.Anchor{}, false, nil
	}
	if err := glif.ValidName(name); err != nil {
		return glif.Anchor{}, false, err
	}
	x, y := m.Map(t, firstCoordinate(n, "x"), firstCoordinate(n, "y"))
	return glif.Anchor{X: x, Y: y, Name: name}, true, nil
}

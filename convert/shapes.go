package convert

import (
	"fmt"

	"github.com/benoitkugler/svg2glif/svgdoc"
	"github.com/benoitkugler/svg2glif/svgpath"
	"golang.org/x/image/math/f64"
)

// readLengths parses the given attributes, which default to 0.
// An attribute absent from the node is reported in has.
func readLengths(n *svgdoc.Node, names ...string) (values []float64, has []bool, err error) {
	values = make([]float64, len(names))
	has = make([]bool, len(names))
	for i, name := range names {
		v, ok := n.Attr(name)
		if !ok {
			continue
		}
		values[i], err = svgdoc.ParseLength(v)
		if err != nil {
			return nil, nil, fmt.Errorf("<%s> attribute %s: %w", n.Tag, name, err)
		}
		has[i] = true
	}
	return values, has, nil
}

// shapePath reduces a basic shape to its equivalent path.
func shapePath(n *svgdoc.Node) (svgpath.Path, error) {
	switch n.Tag {
	case "rect":
		v, has, err := readLengths(n, "x", "y", "width", "height", "rx", "ry")
		if err != nil {
			return nil, err
		}
		rx, ry := v[4], v[5]
		if has[4] && !has[5] {
			ry = rx
		} else if has[5] && !has[4] {
			rx = ry
		}
		return svgpath.Rect(v[0], v[1], v[2], v[3], rx, ry), nil
	case "circle":
		v, _, err := readLengths(n, "cx", "cy", "r")
		if err != nil {
			return nil, err
		}
		return svgpath.Ellipse(v[0], v[1], v[2], v[2]), nil
	case "ellipse":
		v, _, err := readLengths(n, "cx", "cy", "rx", "ry")
		if err != nil {
			return nil, err
		}
		return svgpath.Ellipse(v[0], v[1], v[2], v[3]), nil
	case "line":
		v, _, err := readLengths(n, "x1", "y1", "x2", "y2")
		if err != nil {
			return nil, err
		}
		return svgpath.Line(v[0], v[1], v[2], v[3]), nil
	case "polyline", "polygon":
		attr, _ := n.Attr("points")
		coords, err := svgpath.ParseNumbers(attr)
		if err != nil {
			return nil, fmt.Errorf("%w: <%s> points: %s", svgdoc.ErrMalformedInput, n.Tag, err)
		}
		if len(coords)%2 != 0 {
			return nil, fmt.Errorf("%w: %s has odd number of points", svgdoc.ErrMalformedInput, n.Tag)
		}
		points := make([]f64.Vec2, len(coords)/2)
		for i := range points {
			points[i] = f64.Vec2{coords[2*i], coords[2*i+1]}
		}
		return svgpath.Polyline(points, n.Tag == "polygon"), nil
	}
	return nil, nil
}

package convert

import (
	"fmt"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgdoc"
	"github.com/benoitkugler/svg2glif/svgpath"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

// outline is what a subtree contributes to the glyph
type outline struct {
	contours []glif.Contour
	anchors  []glif.Anchor
}

func (o *outline) append(other outline) {
	o.contours = append(o.contours, other.contours...)
	o.anchors = append(o.anchors, other.anchors...)
}

type walker struct {
	mapper Mapper
	opts   Options
}

// walk returns the contours and anchors found under n, in document
// order. parent is the transform accumulated from the ancestors of n.
func (w walker) walk(n *svgdoc.Node, parent rasterx.Matrix2D) (outline, error) {
	if n.IsCharData() {
		return outline{}, nil
	}
	current := parent
	if v, ok := n.Attr("transform"); ok {
		t, err := svgpath.ParseTransform(v)
		if err != nil {
			return outline{}, fmt.Errorf("<%s>: %w", n.Tag, err)
		}
		current = parent.Mult(t)
	}

	switch n.Kind {
	case svgdoc.Path:
		d, ok := n.Attr("d")
		if !ok {
			return outline{}, nil
		}
		path, err := svgpath.ParsePath(d)
		if err != nil {
			return outline{}, err
		}
		return w.pathOutline(path, current)
	case svgdoc.Text:
		a, ok, err := anchor(n, current, w.mapper)
		if err != nil {
			return outline{}, w.opts.handleError(fmt.Errorf("anchor skipped: %w", err))
		}
		if !ok {
			return outline{}, nil
		}
		return outline{anchors: []glif.Anchor{a}}, nil
	case svgdoc.Shape:
		if w.opts.Shapes {
			path, err := shapePath(n)
			if err != nil {
				return outline{}, err
			}
			return w.pathOutline(path, current)
		}
	}

	// groups and other elements are transparent containers
	var out outline
	for _, child := range n.Children {
		sub, err := w.walk(child, current)
		if err != nil {
			return outline{}, err
		}
		out.append(sub)
	}
	return out, nil
}

func (w walker) pathOutline(path svgpath.Path, t rasterx.Matrix2D) (outline, error) {
	cs, quads := contours(path, t, w.mapper)
	if quads != 0 {
		err := w.opts.handleError(ErrQuadraticSegment, zap.Int("count", quads))
		if err != nil {
			return outline{}, err
		}
	}
	return outline{contours: cs}, nil
}

// Provides the parsing of SVG glyph drawings
// into a tree of elements, which can then be consumed
// by the glyph converter (see svg2glif/convert).
package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrMalformedInput is returned for documents which are not well-formed
// XML, or whose root element is not <svg>.
var ErrMalformedInput = errors.New("malformed svg document")

// Kind classifies the elements relevant to the conversion.
type Kind uint8

const (
	Other Kind = iota // unknown element, or character data
	Group             // svg and g
	Path
	Text
	Shape // rect, circle, ellipse, line, polyline, polygon
)

var kinds = map[string]Kind{
	"svg":      Group,
	"g":        Group,
	"path":     Path,
	"text":     Text,
	"rect":     Shape,
	"circle":   Shape,
	"ellipse":  Shape,
	"line":     Shape,
	"polyline": Shape,
	"polygon":  Shape,
}

func (k Kind) String() string {
	switch k {
	case Group:
		return "group"
	case Path:
		return "path"
	case Text:
		return "text"
	case Shape:
		return "shape"
	default:
		return "other"
	}
}

// Node is an element of the document. Character data
// is stored in nodes with an empty Tag.
type Node struct {
	Kind     Kind
	Tag      string // local name of the element
	Attrs    []xml.Attr
	Children []*Node
	Text     string // only for character data nodes
}

// Attr returns the value of the attribute with the given local name,
// and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// IsCharData returns true for the nodes storing character data.
func (n *Node) IsCharData() bool { return n.Tag == "" }

// TextContent returns the concatenation of the character data
// found under n, in document order.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.IsCharData() {
		sb.WriteString(n.Text)
		return
	}
	for _, child := range n.Children {
		child.writeText(sb)
	}
}

// Document is a parsed SVG glyph drawing.
type Document struct {
	Root *Node

	Width, Height string // top level width and height attributes, empty if absent
}

// Size returns the size of the drawing, in px.
// Missing width or height default to 100.
func (d *Document) Size() (width, height float64, err error) {
	w, h := d.Width, d.Height
	if w == "" {
		w = "100"
	}
	if h == "" {
		h = "100"
	}
	width, err = ParseLength(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width: %w", err)
	}
	height, err = ParseLength(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height: %w", err)
	}
	return width, height, nil
}

// Parse reads the document from the given io.Reader.
// Non UTF-8 encodings declared in the XML prolog are supported.
func Parse(stream io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		doc   Document
		stack []*Node
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			node := &Node{Kind: kinds[se.Name.Local], Tag: se.Name.Local, Attrs: se.Attr}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformedInput)
				}
				if se.Name.Local != "svg" {
					return nil, fmt.Errorf("%w: root element is <%s>, expected <svg>", ErrMalformedInput, se.Name.Local)
				}
				doc.Root = node
				doc.Width, _ = node.Attr("width")
				doc.Height, _ = node.Attr("height")
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Text: string(se)})
		}
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: no svg element", ErrMalformedInput)
	}
	return &doc, nil
}

// ParseFile reads the document from the named file.
func ParseFile(svgFile string) (*Document, error) {
	fin, errf := os.Open(svgFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return Parse(fin)
}

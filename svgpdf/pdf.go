// Implements a PDF backend to render glyph proofs,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgdraw"
	"github.com/jung-kurt/gofpdf"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var _ svgdraw.Drawer = (*filler)(nil)

// implements the path commands, and
// tracks the bounding box of the written outline
type pather struct {
	pdf         *gofpdf.Fpdf
	boundingBox svgdraw.BoundingBox // in page space
}

// implements the filling operation; GLIF outlines
// use the non-zero winding rule
type filler struct {
	pather
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return svgdraw.FromFixed(a)
}

func (p *pather) Clear() {
	p.boundingBox.Clear()
}

func (p *pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
	p.boundingBox.Start(a)
}

func (p *pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
	p.boundingBox.Line(b)
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
	p.boundingBox.CubeBezier(b, c, d)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f *filler) Draw() {
	f.pdf.DrawPath("f")
}

// page layout, in millimeters
const (
	pageMargin  = 20.
	headerSpace = 12.
	anchorSize  = 1.2
)

// Renderer writes glyph proofs, one glyph per A4 page.
type Renderer struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

// NewRenderer returns a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

// AddGlyph adds a page showing g: its filled outline, the advance
// box and the baseline, the bounding box of the outline, and the anchors.
func (r Renderer) AddGlyph(g *glif.Glyph) {
	pdf := r.pdf
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	title := g.Name
	for _, u := range g.Unicodes {
		title += fmt.Sprintf(" U+%04X", u)
	}
	pdf.Text(pageMargin, pageMargin, r.translate(title))

	frame := svgdraw.Frame(g)
	if frame.Width() <= 0 || frame.Height() <= 0 {
		return
	}
	areaW, areaH := pageW-2*pageMargin, pageH-2*pageMargin-headerSpace
	s := math.Min(areaW/frame.Width(), areaH/frame.Height())
	x0, y0 := pageMargin, pageMargin+headerSpace
	// font space is y-up, page space is y-down
	m := rasterx.Matrix2D{A: s, D: -s, E: x0 - frame.MinX*s, F: y0 + frame.MaxY*s}

	guide := func(x1, y1, x2, y2 float64) {
		ax, ay := m.Transform(x1, y1)
		bx, by := m.Transform(x2, y2)
		pdf.Line(ax, ay, bx, by)
	}
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	guide(frame.MinX, 0, frame.MaxX, 0) // baseline
	guide(0, frame.MinY, 0, frame.MaxY)
	guide(g.Advance.Width, frame.MinY, g.Advance.Width, frame.MaxY)
	if g.Advance.Height != 0 {
		guide(frame.MinX, g.Advance.Height, frame.MaxX, g.Advance.Height)
	}
	pdf.SetDashPattern([]float64{}, 0)

	f := filler{pather: pather{pdf: pdf}}
	pdf.SetFillColor(0, 0, 0)
	svgdraw.DrawGlyph(&f, g, m)
	if !f.boundingBox.Empty() {
		f.Draw()

		minX, minY := fixedTof(f.boundingBox.Rect.Min)
		maxX, maxY := fixedTof(f.boundingBox.Rect.Max)
		pdf.SetDrawColor(30, 90, 220)
		pdf.Rect(minX, minY, maxX-minX, maxY-minY, "D")
	}

	pdf.SetFillColor(220, 30, 30)
	pdf.SetTextColor(220, 30, 30)
	pdf.SetFontSize(8)
	for _, a := range g.Anchors {
		x, y := m.Transform(a.X, a.Y)
		pdf.Circle(x, y, anchorSize, "F")
		pdf.Text(x+2*anchorSize, y-anchorSize, r.translate(a.Name))
	}
}

// WriteProof writes a PDF document to w, with one page per glyph.
func WriteProof(w io.Writer, glyphs ...*glif.Glyph) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("svg2glif", true)
	r := NewRenderer(pdf)
	for _, g := range glyphs {
		r.AddGlyph(g)
	}
	return pdf.Output(w)
}

// WriteProofFile is a convenience wrapper around WriteProof.
func WriteProofFile(file string, glyphs ...*glif.Glyph) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := WriteProof(f, glyphs...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

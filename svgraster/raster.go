// Implements a raster backend to render glyph proofs,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgdraw"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var (
	_ svgdraw.Drawer = (*Renderer)(nil) // assert interface conformance

	guideColor  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	anchorColor = color.RGBA{R: 220, G: 30, B: 30, A: 255}
)

// Renderer fills the glyph outlines and strokes the proof guides.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	rd := &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
	rd.dasher.SetStroke(fixed.I(1), fixed.I(4), nil, nil, rasterx.FlatGap, rasterx.MiterClip, []float64{4, 3}, 0)
	return rd
}

func (rd *Renderer) Clear() {
	rd.dasher.Clear()
	rd.filler.Clear()
}

func (rd *Renderer) Start(a fixed.Point26_6)            { rd.filler.Start(a) }
func (rd *Renderer) Line(b fixed.Point26_6)             { rd.filler.Line(b) }
func (rd *Renderer) CubeBezier(b, c, d fixed.Point26_6) { rd.filler.CubeBezier(b, c, d) }
func (rd *Renderer) Stop(closeLoop bool)                { rd.filler.Stop(closeLoop) }

// Fill paints the accumulated outlines with c, using the
// non-zero winding rule, then clears the path.
func (rd *Renderer) Fill(c color.Color) {
	rd.filler.SetWinding(true)
	rd.filler.SetColor(c)
	rd.filler.Draw()
	rd.Clear()
}

// dashedLine strokes a dashed segment between two points.
func (rd *Renderer) dashedLine(c color.Color, x1, y1, x2, y2 float64) {
	rd.dasher.Clear()
	rd.dasher.Start(svgdraw.ToFixed(x1, y1))
	rd.dasher.Line(svgdraw.ToFixed(x2, y2))
	rd.dasher.Stop(false)
	rd.dasher.SetColor(c)
	rd.dasher.Draw()
	rd.dasher.Clear()
}

// ErrEmptyFrame is returned when a glyph has nothing to display.
var ErrEmptyFrame = errors.New("empty glyph frame")

const margin = 4 // pixels

// RasterGlyph renders a proof of g, in black over a white background,
// into an image height pixels tall (margins included).
// The advance box and the baseline are drawn as dashed guides,
// and anchors as red dots.
func RasterGlyph(g *glif.Glyph, height int) (*image.RGBA, error) {
	frame := svgdraw.Frame(g)
	if frame.Width() <= 0 || frame.Height() <= 0 {
		return nil, ErrEmptyFrame
	}
	if height <= 2*margin {
		return nil, fmt.Errorf("invalid image height %d", height)
	}
	s := float64(height-2*margin) / frame.Height()
	w := int(math.Ceil(frame.Width()*s)) + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, w, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// font space is y-up
	m := rasterx.Matrix2D{A: s, D: -s, E: margin - frame.MinX*s, F: margin + frame.MaxY*s}

	scanner := rasterx.NewScannerGV(w, height, img, img.Bounds())
	renderer := NewRenderer(w, height, scanner)

	guide := func(x1, y1, x2, y2 float64) {
		ax, ay := m.Transform(x1, y1)
		bx, by := m.Transform(x2, y2)
		renderer.dashedLine(guideColor, ax, ay, bx, by)
	}
	guide(frame.MinX, 0, frame.MaxX, 0) // baseline
	guide(0, frame.MinY, 0, frame.MaxY)
	guide(g.Advance.Width, frame.MinY, g.Advance.Width, frame.MaxY)
	if g.Advance.Height != 0 {
		guide(frame.MinX, g.Advance.Height, frame.MaxX, g.Advance.Height)
	}

	svgdraw.DrawGlyph(renderer, g, m)
	renderer.Fill(color.Black)

	for _, a := range g.Anchors {
		x, y := m.Transform(a.X, a.Y)
		rasterx.AddCircle(x, y, 3, renderer.filler)
	}
	if len(g.Anchors) != 0 {
		renderer.Fill(anchorColor)
	}
	return img, nil
}

// WritePNG renders g (see RasterGlyph) and encodes it as PNG.
func WritePNG(w io.Writer, g *glif.Glyph, height int) error {
	img, err := RasterGlyph(g, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WritePNGFile is a convenience wrapper around WritePNG.
func WritePNGFile(file string, g *glif.Glyph, height int) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := WritePNG(f, g, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

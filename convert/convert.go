// Package convert implements the conversion of SVG glyph
// drawings into GLIF glyph records.
//
// Path elements are converted into contours and text elements
// into anchors. Transforms are accumulated along the tree, then
// points are mapped to font space, with the baseline at
// height - descent and a scale of emSize / height.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgdoc"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// ConvertDocument converts a parsed document. defaultName is used
// as glyph name when cfg.Name is empty; if both are empty,
// DefaultGlyphName is used.
// No partial glyph is returned on error.
func ConvertDocument(doc *svgdoc.Document, defaultName string, cfg Config, opts Options) (*glif.Glyph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	width, height, err := doc.Size()
	if err != nil {
		return nil, err
	}
	mapper, err := NewMapper(height, cfg.Descent, cfg.EmSize)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = defaultName
	}
	if name == "" {
		name = DefaultGlyphName
	}
	name = norm.NFC.String(name)
	if err := glif.ValidName(name); err != nil {
		return nil, fmt.Errorf("glyph name: %w", err)
	}

	glyph := &glif.Glyph{
		Name: name,
		Advance: glif.Advance{
			Width:  round(width * mapper.Scale),
			Height: round(height * mapper.Scale),
		},
	}
	if cfg.Unicode != "" {
		r, err := cfg.codepoint()
		if err != nil {
			if err = opts.handleError(err); err != nil {
				return nil, err
			}
		} else {
			glyph.Unicodes = []rune{r}
		}
	}

	w := walker{mapper: mapper, opts: opts}
	out, err := w.walk(doc.Root, rasterx.Identity)
	if err != nil {
		return nil, err
	}
	glyph.Contours, glyph.Anchors = out.contours, out.anchors

	opts.logger().Debug("converted glyph", zap.String("name", name),
		zap.Int("contours", len(glyph.Contours)), zap.Int("points", glyph.PointCount()),
		zap.Int("anchors", len(glyph.Anchors)))
	return glyph, nil
}

// Convert reads an SVG document from r and converts it.
func Convert(r io.Reader, cfg Config, opts Options) (*glif.Glyph, error) {
	doc, err := svgdoc.Parse(r)
	if err != nil {
		return nil, err
	}
	return ConvertDocument(doc, "", cfg, opts)
}

// ConvertString is a convenience wrapper around Convert.
func ConvertString(svg string, cfg Config, opts Options) (*glif.Glyph, error) {
	return Convert(strings.NewReader(svg), cfg, opts)
}

// ConvertFile converts the named SVG file. When cfg.Name is empty,
// the glyph is named after the file.
func ConvertFile(svgFile string, cfg Config, opts Options) (*glif.Glyph, error) {
	doc, err := svgdoc.ParseFile(svgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", svgFile, err)
	}
	glyph, err := ConvertDocument(doc, fileStem(svgFile), cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", svgFile, err)
	}
	return glyph, nil
}

// WriteGlif converts svgFile and writes the result to glifFile.
// The converted glyph is returned.
func WriteGlif(svgFile, glifFile string, cfg Config, opts Options) (*glif.Glyph, error) {
	glyph, err := ConvertFile(svgFile, cfg, opts)
	if err != nil {
		return nil, err
	}
	b, err := glif.Marshal(glyph)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(glifFile, b, 0o644); err != nil {
		return nil, err
	}
	return glyph, nil
}

func fileStem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

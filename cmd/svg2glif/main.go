// Command svg2glif converts SVG glyph drawings to GLIF files.
//
// A single file is converted into a .glif file; a directory of .svg
// files is converted into a UFO glyphs directory, with its contents.plist.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/benoitkugler/svg2glif/convert"
	"github.com/benoitkugler/svg2glif/glif"
	"github.com/benoitkugler/svg2glif/svgpdf"
	"github.com/benoitkugler/svg2glif/svgraster"
	"go.uber.org/zap"
)

var (
	// Flags
	input    = flag.String("i", "", "Input SVG file, or directory of SVG files")
	output   = flag.String("o", "", "Output GLIF file, or glyphs directory (default: next to the input)")
	emSize   = flag.Float64("e", 1000, "Em size of the font")
	descent  = flag.Float64("d", 0, "Descent of the font, in SVG units")
	unicode  = flag.String("u", "", "Unicode codepoint, in hexadecimal")
	name     = flag.String("n", "", "Glyph name (default: input file name)")
	shapes   = flag.Bool("shapes", false, "Convert basic shapes (rect, circle, ...) too")
	strict   = flag.Bool("strict", false, "Fail on recoverable errors instead of warning")
	pngProof = flag.String("png", "", "Write a PNG proof to this file")
	pdfProof = flag.String("pdf", "", "Write a PDF proof sheet to this file")
	pngSize  = flag.Int("png-height", 512, "Height of the PNG proof, in pixels")
	workers  = flag.Int("conc", runtime.NumCPU(), "Number of files to convert concurrently")
	verbose  = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: svg2glif -i <input> [options]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, logger)
	stop()
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func run(ctx context.Context, logger *zap.Logger) error {
	cfg := convert.NewConfig(*emSize, *descent).WithUnicode(*unicode).WithName(*name)
	opts := convert.Options{Logger: logger, Shapes: *shapes}
	if *strict {
		opts.ErrorMode = convert.StrictErrorMode
	}

	info, err := os.Stat(*input)
	if err != nil {
		return err
	}

	var glyphs []*glif.Glyph
	if info.IsDir() {
		if *name != "" || *unicode != "" {
			return errors.New("-n and -u are not supported with a directory input")
		}
		dst := *output
		if dst == "" {
			dst = filepath.Join(*input, "glyphs")
		}
		glyphs, err = convert.ConvertDir(ctx, *input, dst, cfg, opts, *workers)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d glifs to %s\n", len(glyphs), dst)
	} else {
		dst := *output
		if dst == "" {
			dst = strings.TrimSuffix(*input, filepath.Ext(*input)) + ".glif"
		}
		glyph, err := convert.WriteGlif(*input, dst, cfg, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote glif to %s\n", dst)
		glyphs = []*glif.Glyph{glyph}
	}

	if *pngProof != "" {
		if len(glyphs) != 1 {
			return errors.New("-png requires a single glyph, use -pdf for a directory")
		}
		if err := svgraster.WritePNGFile(*pngProof, glyphs[0], *pngSize); err != nil {
			return fmt.Errorf("png proof: %w", err)
		}
		logger.Info("wrote png proof", zap.String("file", *pngProof))
	}
	if *pdfProof != "" {
		if err := svgpdf.WriteProofFile(*pdfProof, glyphs...); err != nil {
			return fmt.Errorf("pdf proof: %w", err)
		}
		logger.Info("wrote pdf proof", zap.String("file", *pdfProof))
	}
	return nil
}

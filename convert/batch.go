package convert

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/benoitkugler/svg2glif/glif"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Batch converts the given files concurrently, using at most
// workers goroutines (runtime.NumCPU() if workers <= 0).
// The glyphs are returned in the order of files, and are named
// after their file: cfg.Name and cfg.Unicode are ignored.
// The first error cancels the remaining conversions.
func Batch(ctx context.Context, files []string, cfg Config, opts Options, workers int) ([]*glif.Glyph, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	cfg.Name, cfg.Unicode = "", ""
	glyphs := make([]*glif.Glyph, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			glyph, err := ConvertFile(file, cfg, opts)
			if err != nil {
				return err
			}
			opts.logger().Info("converted", zap.String("file", file), zap.String("glyph", glyph.Name))
			glyphs[i] = glyph
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return glyphs, nil
}

// ListSVGFiles returns the sorted paths of the .svg files in dir.
func ListSVGFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".svg") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ConvertDir converts every SVG file of srcDir into
// the glyphs directory dstDir, with its contents.plist.
func ConvertDir(ctx context.Context, srcDir, dstDir string, cfg Config, opts Options, workers int) ([]*glif.Glyph, error) {
	files, err := ListSVGFiles(srcDir)
	if err != nil {
		return nil, err
	}
	glyphs, err := Batch(ctx, files, cfg, opts, workers)
	if err != nil {
		return nil, err
	}
	if err := glif.WriteGlyphSet(dstDir, glyphs); err != nil {
		return nil, err
	}
	return glyphs, nil
}

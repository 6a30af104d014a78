package glif

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ContentsFile is the name of the file mapping glyph names
// to file names in a glyphs directory.
const ContentsFile = "contents.plist"

const plistHeader = xmlHeader + `<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
`

// WriteContents writes the property list mapping glyph names
// to file names, sorted by glyph name.
func WriteContents(w io.Writer, contents map[string]string) error {
	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString(plistHeader)
	for _, name := range names {
		buf.WriteString("\t<key>")
		xml.EscapeText(&buf, []byte(name))
		buf.WriteString("</key>\n\t<string>")
		xml.EscapeText(&buf, []byte(contents[name]))
		buf.WriteString("</string>\n")
	}
	buf.WriteString("</dict>\n</plist>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// GlyphSet assigns file names to glyphs, in insertion order.
type GlyphSet struct {
	Contents map[string]string // glyph name -> file name

	used map[string]bool // lower cased file names
}

func NewGlyphSet() *GlyphSet {
	return &GlyphSet{Contents: map[string]string{}, used: map[string]bool{}}
}

// Add registers the glyph name and returns its file name.
func (gs *GlyphSet) Add(glyphName string) (string, error) {
	if _, has := gs.Contents[glyphName]; has {
		return "", fmt.Errorf("duplicate glyph name %q", glyphName)
	}
	fileName := FileName(glyphName, gs.used)
	gs.used[strings.ToLower(fileName)] = true
	gs.Contents[glyphName] = fileName
	return fileName, nil
}

// WriteGlyphSet writes the glyphs as GLIF files in dir,
// followed by the contents.plist file. dir is created if needed.
func WriteGlyphSet(dir string, glyphs []*Glyph) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	gs := NewGlyphSet()
	for _, g := range glyphs {
		fileName, err := gs.Add(g.Name)
		if err != nil {
			return err
		}
		b, err := Marshal(g)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", g.Name, err)
		}
		if err = os.WriteFile(filepath.Join(dir, fileName), b, 0o644); err != nil {
			return err
		}
	}

	f, err := os.Create(filepath.Join(dir, ContentsFile))
	if err != nil {
		return err
	}
	if err = WriteContents(f, gs.Contents); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package svgpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/math/f64"
)

// ErrMalformedPath is wrapped by the *SyntaxError returned
// when a path data attribute can't be parsed.
var ErrMalformedPath = errors.New("malformed path data")

// SyntaxError locates an error in path data.
type SyntaxError struct {
	Offset  int    // byte offset in the path data
	Segment string // the offending segment, starting at its command letter
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at position %d (%q)", ErrMalformedPath, e.Reason, e.Offset, e.Segment)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedPath }

// argument count for each command
var cmdLens = [256]int{
	'M': 2, 'm': 2,
	'L': 2, 'l': 2,
	'H': 1, 'h': 1,
	'V': 1, 'v': 1,
	'C': 6, 'c': 6,
	'S': 4, 's': 4,
	'Q': 4, 'q': 4,
	'T': 2, 't': 2,
	'A': 7, 'a': 7,
	'Z': 0, 'z': 0,
}

func isCommand(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c',
		'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func startsNumber(b byte) bool {
	return ('0' <= b && b <= '9') || b == '.' || b == '-' || b == '+'
}

// pathCursor holds the state of the path data
// while it is compiled into absolute operations.
type pathCursor struct {
	path             Path
	placeX, placeY   float64 // current point
	startX, startY   float64 // start of the current subpath
	cntlPtX, cntlPtY float64 // last control point, used for reflections
	lastKey          byte
	points           []float64

	data []byte
	pos  int
}

func (c *pathCursor) skipSeparators() {
	for c.pos < len(c.data) && isSeparator(c.data[c.pos]) {
		c.pos++
	}
}

func (c *pathCursor) errorf(segStart int, format string, args ...interface{}) error {
	end := c.pos + 1
	if end > len(c.data) {
		end = len(c.data)
	}
	return &SyntaxError{Offset: c.pos, Segment: string(c.data[segStart:end]), Reason: fmt.Sprintf(format, args...)}
}

// readArgs fills c.points with the n arguments of the command key.
// Arc flags are single digits, which may be packed without separators.
func (c *pathCursor) readArgs(key byte, n int, segStart int) error {
	c.points = c.points[:0]
	for i := 0; i < n; i++ {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			return c.errorf(segStart, "missing argument for %q", key)
		}
		if (key == 'a' || key == 'A') && (i == 3 || i == 4) {
			switch c.data[c.pos] {
			case '0':
				c.points = append(c.points, 0)
			case '1':
				c.points = append(c.points, 1)
			default:
				return c.errorf(segStart, "invalid arc flag %q", c.data[c.pos])
			}
			c.pos++
			continue
		}
		f, l := strconv.ParseFloat(c.data[c.pos:])
		if l == 0 {
			return c.errorf(segStart, "expected number for %q", key)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return c.errorf(segStart, "number out of range")
		}
		c.points = append(c.points, f)
		c.pos += l
	}
	return nil
}

// ParsePath compiles the SVG path data into a Path of absolute
// move, line, quadratic, cubic and close operations.
// H, V and S commands are expanded, arcs are approximated by cubics.
// An empty string returns an empty path.
func ParsePath(d string) (Path, error) {
	c := &pathCursor{data: []byte(d)}
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			break
		}
		segStart := c.pos
		key := c.data[c.pos]
		if !isCommand(key) {
			return nil, c.errorf(segStart, "unexpected character %q", key)
		}
		if c.lastKey == 0 && key != 'M' && key != 'm' {
			return nil, c.errorf(segStart, "path must start with a moveto")
		}
		c.pos++
		n := cmdLens[key]
		if n == 0 {
			c.addSeg(key)
			continue
		}
		for first := true; ; first = false {
			c.skipSeparators()
			if !first && (c.pos >= len(c.data) || !startsNumber(c.data[c.pos])) {
				break
			}
			if err := c.readArgs(key, n, segStart); err != nil {
				return nil, err
			}
			c.addSeg(key)
			// extra coordinate pairs after a moveto are implicit linetos
			if key == 'M' {
				key = 'L'
			} else if key == 'm' {
				key = 'l'
			}
			segStart = c.pos
		}
	}
	return c.path, nil
}

func (c *pathCursor) reflectControlQuad() {
	switch c.lastKey {
	case 'q', 'Q', 't', 'T':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

func (c *pathCursor) reflectControlCube() {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// addSeg appends the operation for key, with arguments in c.points.
func (c *pathCursor) addSeg(key byte) {
	var relX, relY float64
	switch key {
	case 'm', 'l', 'h', 'v', 'c', 's', 'q', 't', 'a':
		relX, relY = c.placeX, c.placeY
	}
	p := c.points
	switch c.lastKey {
	case 'Z', 'z':
		// a subpath drawn after a closepath starts at the previous subpath start
		if key != 'M' && key != 'm' && key != 'Z' && key != 'z' {
			c.path.Start(f64.Vec2{c.startX, c.startY})
		}
	}
	switch key {
	case 'Z', 'z':
		c.path.Stop(true)
		c.placeX, c.placeY = c.startX, c.startY
	case 'M', 'm':
		c.placeX, c.placeY = p[0]+relX, p[1]+relY
		c.startX, c.startY = c.placeX, c.placeY
		c.path.Start(f64.Vec2{c.placeX, c.placeY})
	case 'L', 'l':
		c.placeX, c.placeY = p[0]+relX, p[1]+relY
		c.path.Line(f64.Vec2{c.placeX, c.placeY})
	case 'H', 'h':
		c.placeX = p[0] + relX
		c.path.Line(f64.Vec2{c.placeX, c.placeY})
	case 'V', 'v':
		c.placeY = p[0] + relY
		c.path.Line(f64.Vec2{c.placeX, c.placeY})
	case 'Q', 'q':
		c.cntlPtX, c.cntlPtY = p[0]+relX, p[1]+relY
		c.placeX, c.placeY = p[2]+relX, p[3]+relY
		c.path.QuadBezier(f64.Vec2{c.cntlPtX, c.cntlPtY}, f64.Vec2{c.placeX, c.placeY})
	case 'T', 't':
		c.reflectControlQuad()
		c.placeX, c.placeY = p[0]+relX, p[1]+relY
		c.path.QuadBezier(f64.Vec2{c.cntlPtX, c.cntlPtY}, f64.Vec2{c.placeX, c.placeY})
	case 'C', 'c':
		c1 := f64.Vec2{p[0] + relX, p[1] + relY}
		c.cntlPtX, c.cntlPtY = p[2]+relX, p[3]+relY
		c.placeX, c.placeY = p[4]+relX, p[5]+relY
		c.path.CubeBezier(c1, f64.Vec2{c.cntlPtX, c.cntlPtY}, f64.Vec2{c.placeX, c.placeY})
	case 'S', 's':
		c.reflectControlCube()
		c1 := f64.Vec2{c.cntlPtX, c.cntlPtY}
		c.cntlPtX, c.cntlPtY = p[0]+relX, p[1]+relY
		c.placeX, c.placeY = p[2]+relX, p[3]+relY
		c.path.CubeBezier(c1, f64.Vec2{c.cntlPtX, c.cntlPtY}, f64.Vec2{c.placeX, c.placeY})
	case 'A', 'a':
		endX, endY := p[5]+relX, p[6]+relY
		c.placeX, c.placeY = c.path.addArc(c.placeX, c.placeY, p[0], p[1], p[2], p[3] != 0, p[4] != 0, endX, endY)
	}
	c.lastKey = key
}

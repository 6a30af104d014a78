package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultGlyphName is used when no name is configured
// and none can be derived from the input file.
const DefaultGlyphName = "svgglyph"

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrQuadraticSegment is reported for each quadratic segment
// dropped from the outline.
var ErrQuadraticSegment = errors.New("quadratic segment dropped")

// ErrInvalidUnicode is reported for unicode values which
// are not hexadecimal code points.
var ErrInvalidUnicode = errors.New("invalid unicode value")

// Config stores the font metrics the drawing is converted to.
type Config struct {
	EmSize  float64 // units per em, must be positive
	Descent float64 // in source units
	Unicode string  // optional, hexadecimal code point
	Name    string  // optional glyph name
}

// NewConfig returns the configuration for the given em size and descent.
func NewConfig(emSize, descent float64) Config {
	return Config{EmSize: emSize, Descent: descent}
}

// WithUnicode returns a copy of cfg with the given hexadecimal code point.
func (cfg Config) WithUnicode(unicode string) Config {
	cfg.Unicode = unicode
	return cfg
}

// WithName returns a copy of cfg with the given glyph name.
func (cfg Config) WithName(name string) Config {
	cfg.Name = name
	return cfg
}

// Validate checks the metrics of the configuration.
func (cfg Config) Validate() error {
	if !(cfg.EmSize > 0) || math.IsInf(cfg.EmSize, 0) {
		return fmt.Errorf("%w: em size must be positive, got %g", ErrInvalidConfig, cfg.EmSize)
	}
	if math.IsNaN(cfg.Descent) || math.IsInf(cfg.Descent, 0) {
		return fmt.Errorf("%w: invalid descent %g", ErrInvalidConfig, cfg.Descent)
	}
	return nil
}

// codepoint parses cfg.Unicode
func (cfg Config) codepoint() (rune, error) {
	u, err := strconv.ParseUint(cfg.Unicode, 16, 32)
	if err != nil || !utf8.ValidRune(rune(u)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnicode, cfg.Unicode)
	}
	return rune(u), nil
}

// ErrorMode is the for setting how the converter reacts to
// recoverable issues, such as dropped segments or invalid anchor names.
type ErrorMode uint8

const (
	WarnErrorMode   ErrorMode = iota // log the issue and continue
	IgnoreErrorMode                  // silently continue
	StrictErrorMode                  // abort the conversion
)

func (mode ErrorMode) String() string {
	switch mode {
	case IgnoreErrorMode:
		return "ignore"
	case StrictErrorMode:
		return "strict"
	default:
		return "warn"
	}
}

// Options holds the settings which do not change the
// converted glyph, unless StrictErrorMode aborts the conversion.
type Options struct {
	Logger    *zap.Logger // nil for no logging
	ErrorMode ErrorMode
	// Shapes enables the conversion of basic shapes (rect, circle, ...),
	// which are otherwise ignored.
	Shapes bool
}

func (opts Options) logger() *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}

// handleError reports err according to the error mode, and returns
// a non nil error only in strict mode.
func (opts Options) handleError(err error, fields ...zap.Field) error {
	switch opts.ErrorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		opts.logger().Warn(err.Error(), fields...)
	}
	return nil
}

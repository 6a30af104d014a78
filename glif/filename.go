package glif

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	maxFileNameLength = 255
	clashCounterWidth = 15
	glifSuffix        = ".glif"
)

var reservedFileNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "clock$": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		reservedFileNames[string(c)+":"] = true
	}
}

func isIllegalFileChar(r rune) bool {
	return r < 0x20 || r == 0x7F || strings.ContainsRune(`"*+/:<>?[\]|`, r)
}

// FileName returns the file name of the glyph userName,
// following the UFO 3 user name to file name convention.
// existing holds the lower cased file names already used, which
// are avoided by appending a counter.
// The returned name is not added to existing.
func FileName(userName string, existing map[string]bool) string {
	runes := []rune(userName)
	if len(runes) != 0 && runes[0] == '.' {
		runes[0] = '_'
	}
	var sb strings.Builder
	for _, r := range runes {
		switch {
		case isIllegalFileChar(r):
			sb.WriteByte('_')
		case unicode.ToLower(r) != r:
			sb.WriteRune(r)
			sb.WriteByte('_')
		default:
			sb.WriteRune(r)
		}
	}
	name := truncate(sb.String(), maxFileNameLength-len(glifSuffix))

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if reservedFileNames[strings.ToLower(part)] {
			parts[i] = "_" + part
		}
	}
	name = strings.Join(parts, ".")

	if full := name + glifSuffix; !existing[strings.ToLower(full)] {
		return full
	}

	name = truncate(name, maxFileNameLength-len(glifSuffix)-clashCounterWidth)
	for counter := 1; ; counter++ {
		full := fmt.Sprintf("%s%0*d%s", name, clashCounterWidth, counter, glifSuffix)
		if !existing[strings.ToLower(full)] {
			return full
		}
	}
}

// truncate returns the first n characters of s
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

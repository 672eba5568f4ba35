// Package colors provides hex color parsing and the per-format color
// encodings used by the packagers. Each target format spells the same RGB
// triple differently; everything here is a pure re-encoding of a parsed
// value, so the RGB channels round-trip unchanged.
package colors

import (
	"fmt"
	"strings"
)

// NeutralGray is the fallback RGBA8 value for malformed input in formats
// that use 8-digit hex styling.
const NeutralGray = "#808080FF"

// RGB is a parsed color.
type RGB struct {
	R, G, B uint8
}

// Parse parses "#RRGGBB", "RRGGBB", "#RRGGBBAA" or "RRGGBBAA" hex strings.
// The alpha component, when present, is ignored.
func Parse(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return RGB{}, false
	}

	var c RGB
	channels := []*uint8{&c.R, &c.G, &c.B}
	for i, ch := range channels {
		v, ok := hexByte(s[i*2], s[i*2+1])
		if !ok {
			return RGB{}, false
		}
		*ch = v
	}
	if len(s) == 8 {
		if _, ok := hexByte(s[6], s[7]); !ok {
			return RGB{}, false
		}
	}
	return c, true
}

// ToRGBA8 converts a hex color to the 8-digit "#RRGGBBAA" form with opaque
// alpha. Already-8-digit values pass through uppercased; malformed input
// falls back to NeutralGray.
func ToRGBA8(s string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if _, ok := Parse(s); !ok {
		return NeutralGray
	}
	if len(trimmed) == 8 {
		return "#" + strings.ToUpper(trimmed)
	}
	return "#" + strings.ToUpper(trimmed) + "FF"
}

// RGBFunc converts a hex color to the "rgb(r, g, b)" form. The second return
// is false for malformed input so callers can substitute their own default.
func RGBFunc(s string) (string, bool) {
	c, ok := Parse(s)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B), true
}

// Hex returns the canonical "#RRGGBB" form of a parsed color.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, ok1 := hexNibble(hi)
	l, ok2 := hexNibble(lo)
	if !ok1 || !ok2 {
		return 0, false
	}
	return h<<4 | l, true
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

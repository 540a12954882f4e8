package pixelboard

import (
	"fmt"
	"strings"
)

// MaxPaletteSize is the palette ceiling. Pixel indices are stored as single
// bytes, so the palette can never exceed 256 entries.
const MaxPaletteSize = 256

// NormalizeColor canonicalizes a color string: trims surrounding
// whitespace, lowercases, and expands three-digit hex shorthand
// ("#abc" -> "#aabbcc"). Anything else passes through unchanged - the
// canvas accepts arbitrary CSS-like color syntax without semantic
// validation, it only needs equal colors to compare equal.
func NormalizeColor(color string) string {
	c := strings.ToLower(strings.TrimSpace(color))

	if len(c) == 4 && c[0] == '#' && isHexDigits(c[1:]) {
		return string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
	}

	return c
}

// EnsureColor resolves a color to its palette index, growing the palette
// when the color is new. The input palette is never modified in place; the
// returned slice is the palette to persist. Resolution is idempotent:
// ensuring the same color twice yields the same index and no duplicate
// entry. Returns ErrPaletteFull when the palette is at MaxPaletteSize and
// the color is not already present.
func EnsureColor(palette []string, color string) ([]string, int, error) {
	normalized := NormalizeColor(color)

	for i, existing := range palette {
		if existing == normalized {
			return palette, i, nil
		}
	}

	if len(palette) >= MaxPaletteSize {
		return nil, -1, fmt.Errorf("cannot add color %q, palette has %d entries: %w", normalized, len(palette), ErrPaletteFull)
	}

	updated := make([]string, len(palette), len(palette)+1)
	copy(updated, palette)
	updated = append(updated, normalized)

	return updated, len(updated) - 1, nil
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

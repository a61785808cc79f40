package font

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Basic rasterizes the fixed 7×13 bitmap face from x/image. It has one weight and one
// height, [BasicHeight]; other combinations have no glyphs.
type Basic struct{}

// BasicHeight is the only height Basic rasterizes.
const BasicHeight Height = 13

// GlyphWidth is the advance of the bitmap face, or 0 for unsupported combinations.
func (Basic) GlyphWidth(weight Weight, height Height) int {
	if weight != Regular || height != BasicHeight {
		return 0
	}
	return basicfont.Face7x13.Advance
}

// Glyph rasterizes r, it returns false for runes outside the face's ranges.
func (b Basic) Glyph(r rune, weight Weight, height Height) (*Glyph, bool) {
	if weight != Regular || height != BasicHeight {
		return nil, false
	}
	face := basicfont.Face7x13
	if !basicHas(face, r) {
		return nil, false
	}
	dr, mask, mp, _, ok := face.Glyph(fixed.P(0, face.Ascent), r)
	if !ok {
		return nil, false
	}
	return glyphFromMask(face.Advance, int(height), dr, mask, mp), true
}

// basicHas reports if r is in the face ranges. The face itself substitutes U+FFFD for
// missing runes.
func basicHas(face *basicfont.Face, r rune) bool {
	for _, rng := range face.Ranges {
		if rng.Low <= r && r < rng.High {
			return true
		}
	}
	return false
}

package bootfb

import (
	"fmt"
	"unicode/utf8"

	"github.com/BeatGlow/bootfb/font"
	"github.com/BeatGlow/bootfb/pixel"
)

// TextWidth is the width of s in pixels when drawn with r.
func TextWidth(r font.Rasterizer, s string, weight font.Weight, height font.Height) int {
	return utf8.RuneCountInString(s) * r.GlyphWidth(weight, height)
}

// TextWidth is the width of s in pixels when drawn by WriteString.
func (s *Screen) TextWidth(str string, weight font.Weight, height font.Height) int {
	return TextWidth(s.font, str, weight, height)
}

// WriteString draws str with its top left corner at (x, y), advancing by the fixed
// glyph width after every character.
func (s *Screen) WriteString(str string, x, y int, weight font.Weight, height font.Height) {
	advance := s.font.GlyphWidth(weight, height)
	for _, r := range str {
		s.WriteChar(r, x, y, weight, height)
		x += advance
	}
}

// WriteStringCentered draws str horizontally centered with its top at y.
func (s *Screen) WriteStringCentered(str string, y int, weight font.Weight, height font.Height) {
	x := s.Width()/2 - s.TextWidth(str, weight, height)/2
	s.WriteString(str, x, y, weight, height)
}

// WriteChar draws r with its top left corner at (x, y). A character without a glyph is
// fatal.
func (s *Screen) WriteChar(r rune, x, y int, weight font.Weight, height font.Height) {
	g, ok := s.font.Glyph(r, weight, height)
	if !ok {
		s.fatal(fmt.Errorf("%w for %q (%s, %d px)", ErrNoGlyph, r, weight, height))
		return
	}
	s.WriteGlyph(g, x, y)
}

// WriteGlyph draws g with its top left corner at (x, y). Every sample is drawn, the
// intensity inverted on a light background.
func (s *Screen) WriteGlyph(g *font.Glyph, x, y int) {
	invert := s.background >= 0x80
	g.Rows(func(row int, samples []byte) {
		for col, sample := range samples {
			if invert {
				sample = 0xff - sample
			}
			s.DrawPixel(x+col, y+row, pixel.Gray(sample))
		}
	})
}

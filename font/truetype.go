package font

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/math/fixed"
)

type faceKey struct {
	weight Weight
	height Height
}

// TrueType rasterizes glyphs from monospace TrueType fonts, one font per weight.
//
// Faces are opened once per weight and height; the glyph bitmaps they produce are not
// kept.
type TrueType struct {
	fonts map[Weight]*truetype.Font
	faces map[faceKey]xfont.Face
}

// NewTrueType parses a TrueType font for every weight.
func NewTrueType(fonts map[Weight][]byte) (*TrueType, error) {
	t := &TrueType{
		fonts: make(map[Weight]*truetype.Font, len(fonts)),
		faces: make(map[faceKey]xfont.Face),
	}
	for weight, data := range fonts {
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("font: failed to parse %s font: %w", weight, err)
		}
		t.fonts[weight] = f
	}
	return t, nil
}

// GoMono returns a rasterizer using the Go Mono fonts.
func GoMono() (*TrueType, error) {
	return NewTrueType(map[Weight][]byte{
		Regular: gomono.TTF,
		Bold:    gomonobold.TTF,
	})
}

func (t *TrueType) face(weight Weight, height Height) (xfont.Face, bool) {
	key := faceKey{weight, height}
	if face, ok := t.faces[key]; ok {
		return face, true
	}
	f, ok := t.fonts[weight]
	if !ok || height <= 0 {
		return nil, false
	}
	opts := &truetype.Options{
		Size:    float64(height),
		DPI:     72,
		Hinting: xfont.HintingNone,
	}
	face := truetype.NewFace(f, opts)

	// Shrink the face until ascent and descent fit into the cell.
	if m := face.Metrics(); m.Ascent+m.Descent > fixed.I(int(height)) {
		_ = face.Close()
		extent := float64(m.Ascent+m.Descent) / 64
		opts.Size = float64(height) * float64(height) / extent
		face = truetype.NewFace(f, opts)
	}
	t.faces[key] = face
	return face, true
}

// GlyphWidth is the advance of the font's glyph for 'M', rounded up to whole pixels.
func (t *TrueType) GlyphWidth(weight Weight, height Height) int {
	face, ok := t.face(weight, height)
	if !ok {
		return 0
	}
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return 0
	}
	return advance.Ceil()
}

// Glyph rasterizes r into a GlyphWidth × height cell with the baseline at the font
// ascent. Runes the font maps to its missing glyph are reported as absent.
func (t *TrueType) Glyph(r rune, weight Weight, height Height) (*Glyph, bool) {
	face, ok := t.face(weight, height)
	if !ok || t.fonts[weight].Index(r) == 0 {
		return nil, false
	}

	width := t.GlyphWidth(weight, height)
	ascent := face.Metrics().Ascent.Ceil()
	if ascent > int(height) {
		ascent = int(height)
	}

	dr, mask, mp, _, ok := face.Glyph(fixed.P(0, ascent), r)
	if !ok {
		return nil, false
	}
	return glyphFromMask(width, int(height), dr, mask, mp), true
}

// Close releases the open faces.
func (t *TrueType) Close() error {
	for key, face := range t.faces {
		if err := face.Close(); err != nil {
			return err
		}
		delete(t.faces, key)
	}
	return nil
}

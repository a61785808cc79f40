// Package font rasterizes monospace glyphs into intensity bitmaps.
//
// A [Rasterizer] produces one [Glyph] per character on demand. Glyph bitmaps are not
// cached: callers ask again for every draw.
package font

import (
	"fmt"
	"image"
	"image/draw"
)

// Weight is the stroke weight of a font.
type Weight uint8

// Supported weights.
const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	switch w {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	default:
		return fmt.Sprintf("Weight(%d)", w)
	}
}

// Height is the height of a glyph cell in pixels.
type Height int

// Common heights.
const (
	Size16 Height = 16
	Size20 Height = 20
	Size24 Height = 24
	Size32 Height = 32
)

// Glyph is the rasterized bitmap of one character.
type Glyph struct {
	// Width of the bitmap in pixels.
	Width int

	// Height of the bitmap in pixels.
	Height int

	// Pix holds one intensity per pixel in row-major order, 0 is no ink.
	Pix []byte
}

// At returns the intensity at (x, y).
func (g *Glyph) At(x, y int) byte {
	return g.Pix[y*g.Width+x]
}

// Rows iterates over the rows of the bitmap.
func (g *Glyph) Rows(f func(y int, row []byte)) {
	for y := 0; y < g.Height; y++ {
		f(y, g.Pix[y*g.Width:(y+1)*g.Width])
	}
}

// Rasterizer produces glyphs.
type Rasterizer interface {
	// Glyph rasterizes r, it returns false if the font has no glyph for r at the weight
	// and height requested.
	Glyph(r rune, weight Weight, height Height) (*Glyph, bool)

	// GlyphWidth is the advance of every glyph at weight and height.
	GlyphWidth(weight Weight, height Height) int
}

// glyphFromMask copies the coverage in mask that falls into a width × height cell.
func glyphFromMask(width, height int, dr image.Rectangle, mask image.Image, mp image.Point) *Glyph {
	cell := image.NewAlpha(image.Rect(0, 0, width, height))
	draw.DrawMask(cell, dr, image.Opaque, image.Point{}, mask, mp, draw.Over)

	g := &Glyph{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height),
	}
	for y := 0; y < height; y++ {
		copy(g.Pix[y*width:(y+1)*width], cell.Pix[y*cell.Stride:])
	}
	return g
}

// Interface checks.
var (
	_ Rasterizer = Basic{}
	_ Rasterizer = (*TrueType)(nil)
)

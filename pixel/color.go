package pixel

import "image/color"

// Models for the framebuffer color types.
var (
	ColorModel     color.Model = color.ModelFunc(colorModel)
	LuminanceModel color.Model = color.ModelFunc(luminanceModel)
)

// Common intensities.
var (
	Black = Gray(0x00)
	White = Gray(0xff)
)

// Color is an opaque 24-bit color.
type Color struct {
	R, G, B uint8
}

// Gray is the color with all channels set to intensity.
func Gray(intensity uint8) Color {
	return Color{R: intensity, G: intensity, B: intensity}
}

func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Luminance is the grayscale value of c, round(0.2989*R + 0.5870*G + 0.1140*B).
//
// The coefficients are scaled by 10000 so the weighted sum is exact; adding 5000 before
// the division rounds half up.
func Luminance(c Color) uint8 {
	y := (2989*uint32(c.R) + 5870*uint32(c.G) + 1140*uint32(c.B) + 5000) / 10000
	return uint8(y)
}

func colorModel(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	return toColor(c)
}

func luminanceModel(c color.Color) color.Color {
	return Gray(Luminance(toColor(c)))
}

func toColor(c color.Color) Color {
	switch c := c.(type) {
	case Color:
		return c
	case color.Gray:
		return Gray(c.Y)
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Convert any color to a framebuffer Color, dropping alpha.
func Convert(c color.Color) Color {
	return toColor(c)
}

package pixel

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when a color is encoded for a format other than
// RGB, BGR or U8.
var ErrUnsupportedFormat = errors.New("pixel: unsupported pixel format")

// Format is the per-pixel channel layout of a framebuffer.
type Format uint16

// Supported formats.
const (
	RGB Format = iota // Red, green, blue byte order
	BGR               // Blue, green, red byte order
	U8                // Single 8-bit luminance channel
)

const otherFormat Format = 0x100

// Other is a format the firmware reported that has no encoding, identified by its raw tag.
func Other(tag uint8) Format {
	return otherFormat | Format(tag)
}

// Supported reports if colors can be encoded for f.
func (f Format) Supported() bool {
	return f <= U8
}

// Tag is the raw tag of an Other format.
func (f Format) Tag() uint8 {
	return uint8(f)
}

func (f Format) String() string {
	switch f {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	case U8:
		return "U8"
	default:
		return fmt.Sprintf("Other(0x%02x)", f.Tag())
	}
}

// Encode writes c into dst using the byte layout of f. The length of dst is the number of
// bytes per pixel; channels that do not fit are truncated and trailing bytes are zeroed.
func Encode(dst []byte, c Color, f Format) error {
	var channels [3]byte
	switch f {
	case RGB:
		channels = [3]byte{c.R, c.G, c.B}
	case BGR:
		channels = [3]byte{c.B, c.G, c.R}
	case U8:
		channels = [3]byte{Luminance(c)}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	n := copy(dst, channels[:])
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}

// Decode reads the color stored in src using the byte layout of f. Missing channels are
// read as zero, U8 pixels decode to gray.
func Decode(src []byte, f Format) (Color, error) {
	var channels [3]byte
	copy(channels[:], src)
	switch f {
	case RGB:
		return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
	case BGR:
		return Color{R: channels[2], G: channels[1], B: channels[0]}, nil
	case U8:
		return Gray(channels[0]), nil
	default:
		return Color{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

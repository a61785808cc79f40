package framebuffer

import (
	"errors"
	"fmt"
	"image"

	"github.com/BeatGlow/bootfb/internal/mmio"
	"github.com/BeatGlow/bootfb/pixel"
)

// Errors
var (
	ErrGeometry     = errors.New("framebuffer: invalid geometry")
	ErrNotSupported = errors.New("framebuffer: not supported")
)

// maxBytesPerPixel is the widest pixel the writer encodes.
const maxBytesPerPixel = 8

// Info describes the layout of a framebuffer.
type Info struct {
	// Width of the visible area in pixels.
	Width int

	// Height of the visible area in pixels.
	Height int

	// Stride is the number of pixel slots per row, which may exceed Width due to padding.
	Stride int

	// BytesPerPixel is the size of one pixel slot.
	BytesPerPixel int

	// Format is the pixel layout.
	Format pixel.Format
}

// Size is the minimum buffer length in bytes.
func (info Info) Size() int {
	return info.Height * info.Stride * info.BytesPerPixel
}

// Offset is the byte offset of the pixel at (x, y).
func (info Info) Offset(x, y int) int {
	return (y*info.Stride + x) * info.BytesPerPixel
}

func (info Info) validate() error {
	switch {
	case info.Width <= 0 || info.Height <= 0:
		return fmt.Errorf("%w: %dx%d", ErrGeometry, info.Width, info.Height)
	case info.Stride < info.Width:
		return fmt.Errorf("%w: stride %d is less than width %d", ErrGeometry, info.Stride, info.Width)
	case info.BytesPerPixel <= 0 || info.BytesPerPixel > maxBytesPerPixel:
		return fmt.Errorf("%w: %d bytes per pixel", ErrGeometry, info.BytesPerPixel)
	}
	return nil
}

func (info Info) String() string {
	return fmt.Sprintf("%dx%d stride %d, %d bytes/pixel, %s",
		info.Width, info.Height, info.Stride, info.BytesPerPixel, info.Format)
}

// Writer draws into a raw framebuffer.
type Writer struct {
	buf  []byte
	info Info
}

// New takes ownership of buf, laid out as described by info. The buffer must hold at
// least info.Size() bytes and must not be used by the caller afterwards.
func New(buf []byte, info Info) (*Writer, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}
	if len(buf) < info.Size() {
		return nil, fmt.Errorf("%w: buffer is %d bytes, need %d", ErrGeometry, len(buf), info.Size())
	}
	return &Writer{
		buf:  buf,
		info: info,
	}, nil
}

// Info returns the framebuffer layout.
func (w *Writer) Info() Info {
	return w.info
}

// Bounds is the visible area.
func (w *Writer) Bounds() image.Rectangle {
	return image.Rect(0, 0, w.info.Width, w.info.Height)
}

// ResetFormat replaces the pixel format by RGB. It is called on the fatal path, so that
// drawing a diagnostic after an unsupported format does not fail a second time.
func (w *Writer) ResetFormat() {
	w.info.Format = pixel.RGB
}

// offset returns the byte offset of (x, y), or false if the pixel lies outside the
// visible area or the buffer.
func (w *Writer) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= w.info.Width || y >= w.info.Height {
		return 0, false
	}
	offset := w.info.Offset(x, y)
	if offset+w.info.BytesPerPixel > len(w.buf) {
		return 0, false
	}
	return offset, true
}

// DrawPixel sets the pixel at (x, y) to c.
//
// Pixels outside the visible area are silently clipped. An error is returned only if the
// pixel format has no encoding, in which case the buffer is not modified.
func (w *Writer) DrawPixel(x, y int, c pixel.Color) error {
	offset, ok := w.offset(x, y)
	if !ok {
		return nil
	}

	var scratch [maxBytesPerPixel]byte
	encoded := scratch[:w.info.BytesPerPixel]
	if err := pixel.Encode(encoded, c, w.info.Format); err != nil {
		return err
	}

	for i, v := range encoded {
		mmio.Store8(&w.buf[offset+i], v)
	}
	_ = mmio.Load8(&w.buf[offset])
	return nil
}

// At returns the color stored at (x, y). Pixels outside the visible area read as black.
func (w *Writer) At(x, y int) (pixel.Color, error) {
	offset, ok := w.offset(x, y)
	if !ok {
		return pixel.Black, nil
	}

	var scratch [maxBytesPerPixel]byte
	stored := scratch[:w.info.BytesPerPixel]
	for i := range stored {
		stored[i] = mmio.Load8(&w.buf[offset+i])
	}
	return pixel.Decode(stored, w.info.Format)
}

// ClearGrayscale fills every byte of the buffer with intensity.
//
// This is not a format aware clear: the result is Gray(intensity) only because every
// channel of a gray color carries the same byte. Padding and unused pixel bytes are set to
// intensity too.
func (w *Writer) ClearGrayscale(intensity uint8) {
	mmio.Fill(w.buf, intensity)
}

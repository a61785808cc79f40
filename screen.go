package bootfb

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"periph.io/x/conn/v3/display"

	"github.com/BeatGlow/bootfb/draw"
	"github.com/BeatGlow/bootfb/font"
	"github.com/BeatGlow/bootfb/framebuffer"
	"github.com/BeatGlow/bootfb/pixel"
)

// Config is the screen configuration.
type Config struct {
	// Background is the initial background intensity, 0 is black and 255 is white.
	Background uint8

	// Font rasterizes text, defaults to Go Mono.
	Font font.Rasterizer

	// Halt is called after a fatal error, defaults to [SpinHalt].
	Halt func()

	// Logger overrides the package logger.
	Logger *slog.Logger
}

// DefaultConfig is the configuration used if none is given.
var DefaultConfig = Config{
	Background: 0xff,
}

// Screen draws into a boot framebuffer.
type Screen struct {
	fb         *framebuffer.Writer
	background uint8
	font       font.Rasterizer
	halt       func()
	log        *slog.Logger
}

// New creates the screen for buf, laid out as described by info, and clears it to the
// configured background. The screen owns buf from then on.
func New(buf []byte, info framebuffer.Info, config *Config) (*Screen, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	fb, err := framebuffer.New(buf, info)
	if err != nil {
		return nil, err
	}

	s := &Screen{
		fb:         fb,
		background: config.Background,
		font:       config.Font,
		halt:       config.Halt,
		log:        config.Logger,
	}
	if s.font == nil {
		if s.font, err = font.GoMono(); err != nil {
			return nil, err
		}
	}
	if s.halt == nil {
		s.halt = SpinHalt
	}
	if s.log == nil {
		s.log = Logger()
	}

	s.log.Debug("bootfb: screen", "info", info.String(), "background", s.background)
	s.Clear()
	return s, nil
}

func (s *Screen) String() string {
	return fmt.Sprintf("bootfb screen %s", s.fb.Info())
}

// Width of the visible area in pixels.
func (s *Screen) Width() int {
	return s.fb.Info().Width
}

// Height of the visible area in pixels.
func (s *Screen) Height() int {
	return s.fb.Info().Height
}

// Info is the framebuffer layout, including the current pixel format.
func (s *Screen) Info() framebuffer.Info {
	return s.fb.Info()
}

// Bounds is the visible area.
func (s *Screen) Bounds() image.Rectangle {
	return s.fb.Bounds()
}

// ColorModel used by the framebuffer.
func (s *Screen) ColorModel() color.Model {
	if s.fb.Info().Format == pixel.U8 {
		return pixel.LuminanceModel
	}
	return pixel.ColorModel
}

// At returns the color of the pixel at (x, y). Pixels of unsupported formats read as black.
func (s *Screen) At(x, y int) color.Color {
	c, err := s.fb.At(x, y)
	if err != nil {
		return pixel.Black
	}
	return c
}

// Set the pixel color at (x, y). Pixels outside the screen are ignored.
func (s *Screen) Set(x, y int, c color.Color) {
	s.DrawPixel(x, y, pixel.Convert(c))
}

// DrawPixel sets the pixel at (x, y) to c. Pixels outside the screen are ignored.
func (s *Screen) DrawPixel(x, y int, c pixel.Color) {
	if err := s.fb.DrawPixel(x, y, c); err != nil {
		s.fatal(err)
	}
}

// DrawLine draws a line between (x1,y1) and (x2,y2), both end points included.
func (s *Screen) DrawLine(x1, y1, x2, y2 int, c pixel.Color) {
	draw.Line(s, x1, y1, x2, y2, c)
}

// Background is the current background intensity.
func (s *Screen) Background() uint8 {
	return s.background
}

// Foreground is the intensity used for rectangles, the inverse of the background.
func (s *Screen) Foreground() uint8 {
	return 0xff - s.background
}

// SetBackground changes the background intensity and clears the screen.
func (s *Screen) SetBackground(intensity uint8) {
	s.background = intensity
	s.log.Debug("bootfb: background", "intensity", intensity)
	s.Clear()
}

// Clear fills the screen with the background intensity. See
// [framebuffer.Writer.ClearGrayscale] for how the bytes are filled.
func (s *Screen) Clear() {
	s.fb.ClearGrayscale(s.background)
}

// DrawRectangle fills [x,x+width) × [y,y+height) with the foreground intensity.
func (s *Screen) DrawRectangle(x, y, width, height int) {
	draw.Box(s, x, y, width, height, pixel.Gray(s.Foreground()))
}

// Draw copies src, starting at sp, into the dstRect area of the screen.
//
// Unlike the other drawing methods it returns encoding errors instead of halting.
func (s *Screen) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	r := dstRect.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := src.At(sp.X+x-dstRect.Min.X, sp.Y+y-dstRect.Min.Y)
			if err := s.fb.DrawPixel(x, y, pixel.Convert(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Halt has nothing to stop, drawing is synchronous.
func (s *Screen) Halt() error {
	return nil
}

// Interface checks.
var (
	_ draw.Image     = (*Screen)(nil)
	_ image.Image    = (*Screen)(nil)
	_ display.Drawer = (*Screen)(nil)
)

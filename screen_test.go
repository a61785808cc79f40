package bootfb

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/BeatGlow/bootfb/font"
	"github.com/BeatGlow/bootfb/framebuffer"
	"github.com/BeatGlow/bootfb/pixel"
)

// testFont rasterizes every rune except '?' as the same 2×2 ramp.
type testFont struct{}

var testGlyphPix = []byte{0x00, 0x40, 0x80, 0xff}

func (testFont) Glyph(r rune, _ font.Weight, _ font.Height) (*font.Glyph, bool) {
	if r == '?' {
		return nil, false
	}
	pix := make([]byte, len(testGlyphPix))
	copy(pix, testGlyphPix)
	return &font.Glyph{Width: 2, Height: 2, Pix: pix}, true
}

func (testFont) GlyphWidth(font.Weight, font.Height) int {
	return 3
}

type halted struct{}

var testInfo = framebuffer.Info{Width: 16, Height: 8, Stride: 20, BytesPerPixel: 4, Format: pixel.RGB}

func testScreen(t *testing.T, info framebuffer.Info, background uint8) (*Screen, []byte, *bytes.Buffer) {
	t.Helper()
	var (
		buf = make([]byte, info.Size())
		out = new(bytes.Buffer)
	)
	s, err := New(buf, info, &Config{
		Background: background,
		Font:       testFont{},
		Halt:       func() { panic(halted{}) },
		Logger:     slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	if err != nil {
		t.Fatal(err)
	}
	return s, buf, out
}

func expectHalt(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if v := recover(); v != nil {
			if _, ok := v.(halted); !ok {
				panic(v)
			}
			return
		}
		t.Fatal("expected screen to halt")
	}()
	f()
}

// pixelAt returns the encoded bytes of (x, y).
func pixelAt(buf []byte, info framebuffer.Info, x, y int) []byte {
	offset := info.Offset(x, y)
	return buf[offset : offset+info.BytesPerPixel]
}

func TestNew(t *testing.T) {
	buf := make([]byte, testInfo.Size())
	s, err := New(buf, testInfo, &Config{Background: 0xff, Font: testFont{}})
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Background(); v != 0xff {
		t.Errorf("expected background 0xff, got %#02x", v)
	}
	if !bytes.Equal(buf, bytes.Repeat([]byte{0xff}, len(buf))) {
		t.Error("expected the buffer to be cleared to white")
	}
	if s.Width() != 16 || s.Height() != 8 {
		t.Errorf("expected 16x8, got %dx%d", s.Width(), s.Height())
	}
	if v := s.Bounds(); v != image.Rect(0, 0, 16, 8) {
		t.Errorf("expected bounds (0,0)-(16,8), got %s", v)
	}

	if _, err = New(make([]byte, 10), testInfo, nil); !errors.Is(err, framebuffer.ErrGeometry) {
		t.Errorf("expected ErrGeometry, got %v", err)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	buf := make([]byte, testInfo.Size())
	s, err := New(buf, testInfo, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Background(); v != DefaultConfig.Background {
		t.Errorf("expected default background %#02x, got %#02x", DefaultConfig.Background, v)
	}
	if v := s.TextWidth("AB", font.Bold, font.Size32); v <= 0 {
		t.Errorf("expected the default font to have a width, got %d", v)
	}
}

func TestDrawPixel(t *testing.T) {
	infos := []framebuffer.Info{
		testInfo,
		{Width: 5, Height: 5, Stride: 5, BytesPerPixel: 3, Format: pixel.BGR},
		{Width: 5, Height: 5, Stride: 8, BytesPerPixel: 1, Format: pixel.U8},
	}
	c := pixel.Color{R: 0x10, G: 0x80, B: 0xf0}
	for _, info := range infos {
		t.Run(info.Format.String(), func(it *testing.T) {
			s, buf, _ := testScreen(it, info, 0)
			s.DrawPixel(3, 4, c)

			want := make([]byte, info.BytesPerPixel)
			if err := pixel.Encode(want, c, info.Format); err != nil {
				it.Fatal(err)
			}
			if v := pixelAt(buf, info, 3, 4); !bytes.Equal(v, want) {
				it.Errorf("expected % x, got % x", want, v)
			}
			if v := s.ColorModel().Convert(c); s.At(3, 4) != v {
				it.Errorf("expected %+v, got %+v", v, s.At(3, 4))
			}
		})
	}
}

func TestDrawLine(t *testing.T) {
	s, buf, _ := testScreen(t, testInfo, 0)
	s.DrawLine(-4, -4, 20, 20, pixel.White)
	for i := 0; i < testInfo.Height; i++ {
		if s.At(i, i) != pixel.White {
			t.Errorf("expected white at (%d,%d)", i, i)
		}
	}
	if s.At(1, 0) != pixel.Black {
		t.Error("expected black off the diagonal")
	}

	s.Clear()
	s.DrawLine(0, 0, 0, 0, pixel.White)
	var n int
	for y := 0; y < testInfo.Height; y++ {
		for x := 0; x < testInfo.Width; x++ {
			if pixelAt(buf, testInfo, x, y)[0] != 0 {
				n++
			}
		}
	}
	if n != 1 {
		t.Errorf("expected one pixel, got %d", n)
	}
}

func TestSetBackground(t *testing.T) {
	s, buf, _ := testScreen(t, testInfo, 0xff)
	s.DrawRectangle(0, 0, 4, 4)

	s.SetBackground(100)
	once := bytes.Clone(buf)
	s.SetBackground(100)
	if !bytes.Equal(buf, once) {
		t.Error("setting the same background twice changed the buffer")
	}
	if !bytes.Equal(once, bytes.Repeat([]byte{100}, len(buf))) {
		t.Error("expected every byte to be 100")
	}
	if v := s.Background(); v != 100 {
		t.Errorf("expected background 100, got %d", v)
	}
}

func TestDrawRectangle(t *testing.T) {
	for _, background := range []uint8{0x00, 0x30, 0xff} {
		s, buf, _ := testScreen(t, testInfo, background)
		s.DrawRectangle(14, 6, 5, 5) // partly outside
		s.DrawRectangle(2, 1, 3, 2)

		fg := pixel.Gray(0xff - background)
		bg := pixel.Gray(background)
		for y := 0; y < testInfo.Height; y++ {
			for x := 0; x < testInfo.Width; x++ {
				inside := (x >= 2 && x < 5 && y >= 1 && y < 3) || (x >= 14 && y >= 6)
				want := bg
				if inside {
					want = fg
				}
				if v := s.At(x, y); v != want {
					t.Fatalf("background %#02x: pixel (%d,%d) is %+v, expected %+v", background, x, y, v, want)
				}
			}
		}
		// Padding stays at the background byte.
		if v := buf[testInfo.Offset(testInfo.Width, 0)]; v != background {
			t.Errorf("padding changed to %#02x", v)
		}
	}
}

func TestTextWidth(t *testing.T) {
	s, _, _ := testScreen(t, testInfo, 0xff)
	want := 2 * (testFont{}).GlyphWidth(font.Regular, font.Size16)
	if v := s.TextWidth("AB", font.Regular, font.Size16); v != want {
		t.Errorf("expected %d, got %d", want, v)
	}
	if v := s.TextWidth("", font.Regular, font.Size16); v != 0 {
		t.Errorf("expected 0 for empty text, got %d", v)
	}
	if v := s.TextWidth("né", font.Regular, font.Size16); v != 6 {
		t.Errorf("expected runes to be counted, got %d", v)
	}
}

func TestWriteString(t *testing.T) {
	tests := []struct {
		Background uint8
		Ink        func(sample byte) byte
	}{
		{0xff, func(sample byte) byte { return 0xff - sample }},
		{0x80, func(sample byte) byte { return 0xff - sample }},
		{0x7f, func(sample byte) byte { return sample }},
		{0x00, func(sample byte) byte { return sample }},
	}
	for _, test := range tests {
		s, buf, _ := testScreen(t, testInfo, test.Background)
		s.WriteString("AB", 1, 2, font.Regular, font.Size16)

		for _, origin := range []image.Point{{1, 2}, {4, 2}} {
			for i, sample := range testGlyphPix {
				x, y := origin.X+i%2, origin.Y+i/2
				want := test.Ink(sample)
				if v := pixelAt(buf, testInfo, x, y); !bytes.Equal(v, []byte{want, want, want, 0}) {
					t.Fatalf("background %#02x: pixel (%d,%d) is % x, expected intensity %#02x", test.Background, x, y, v, want)
				}
			}
		}
		// The pen advances by 3, the column between the glyphs is untouched.
		if v := pixelAt(buf, testInfo, 3, 2); v[0] != test.Background {
			t.Errorf("background %#02x: gap pixel is % x", test.Background, v)
		}
	}
}

func TestWriteStringCentered(t *testing.T) {
	s, _, _ := testScreen(t, testInfo, 0)
	s.WriteStringCentered("AB", 0, font.Regular, font.Size16)
	// 16/2 - 6/2 = 5
	if s.At(5, 1) != pixel.Gray(0x80) || s.At(6, 1) != pixel.White {
		t.Errorf("expected the first glyph at x=5")
	}
}

func TestWriteStringNoGlyph(t *testing.T) {
	s, _, out := testScreen(t, testInfo, 0)
	expectHalt(t, func() {
		s.WriteString("A?", 0, 0, font.Bold, font.Size16)
	})
	if !strings.Contains(out.String(), ErrNoGlyph.Error()) {
		t.Errorf("expected the missing glyph to be logged, got %q", out.String())
	}
	if s.At(1, 1) != pixel.White {
		t.Error("expected the glyph before the missing one to be drawn")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	info := testInfo
	info.Format = pixel.Other(4)

	var (
		s   *Screen
		buf = make([]byte, info.Size())
		out = new(bytes.Buffer)
	)
	s, err := New(buf, info, &Config{
		Background: 0,
		Font:       testFont{},
		Halt: func() {
			// A diagnostic drawn while halting must not fail again.
			s.WriteString("X", 0, 0, font.Regular, font.Size16)
			panic(halted{})
		},
		Logger: slog.New(slog.NewTextHandler(out, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}

	expectHalt(t, func() {
		s.DrawPixel(5, 5, pixel.White)
	})
	if v := s.Info().Format; v != pixel.RGB {
		t.Errorf("expected the format to fall back to RGB, got %s", v)
	}
	if !strings.Contains(out.String(), pixel.ErrUnsupportedFormat.Error()) {
		t.Errorf("expected the error to be logged, got %q", out.String())
	}
	if s.At(5, 5) != pixel.Black {
		t.Error("expected the failed pixel not to be drawn")
	}
	if s.At(1, 1) != pixel.White {
		t.Error("expected the diagnostic to be drawn with the fallback format")
	}
}

func TestDraw(t *testing.T) {
	s, _, _ := testScreen(t, testInfo, 0)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 3, color.RGBA{R: 0xff, A: 0xff})

	if err := s.Draw(image.Rect(10, 2, 30, 30), src, image.Pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	if v := s.At(11, 4); v != (pixel.Color{R: 0xff}) {
		t.Errorf("expected red at (11,4), got %+v", v)
	}
	if err := s.Halt(); err != nil {
		t.Error(err)
	}
	if v := s.String(); !strings.Contains(v, "16x8") {
		t.Errorf("unexpected name %q", v)
	}

	info := testInfo
	info.Format = pixel.Other(1)
	u, err := New(make([]byte, info.Size()), info, &Config{Font: testFont{}})
	if err != nil {
		t.Fatal(err)
	}
	if err = u.Draw(u.Bounds(), src, image.Point{}); !errors.Is(err, pixel.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestGoMonoText(t *testing.T) {
	info := framebuffer.Info{Width: 640, Height: 160, Stride: 640, BytesPerPixel: 4, Format: pixel.BGR}
	s, err := New(make([]byte, info.Size()), info, &Config{Background: 0xff})
	if err != nil {
		t.Fatal(err)
	}
	const heading = "No operating system installed"
	s.WriteStringCentered(heading, 100, font.Bold, font.Size32)

	var ink int
	for y := 100; y < 132; y++ {
		for x := 0; x < info.Width; x++ {
			if c := s.At(x, y).(pixel.Color); c.R < 0x80 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("expected dark ink on the white background")
	}
	if v := s.At(0, 0); v != pixel.White {
		t.Errorf("expected white outside the text, got %+v", v)
	}
}

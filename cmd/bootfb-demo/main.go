package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/bootfb"
	"github.com/BeatGlow/bootfb/font"
	"github.com/BeatGlow/bootfb/framebuffer"
	"github.com/BeatGlow/bootfb/pixel"
)

const heading = "No operating system installed"

func main() {
	fbFlag := flag.String("fb", "", "Framebuffer device, such as /dev/fb0")
	pngFlag := flag.String("png", "", "Render into memory and write a PNG file")
	widthFlag := flag.Int("width", 1024, "Width of the in-memory framebuffer")
	heightFlag := flag.Int("height", 768, "Height of the in-memory framebuffer")
	strideFlag := flag.Int("stride", 0, "Pixel slots per row of the in-memory framebuffer (default: width)")
	bppFlag := flag.Int("bpp", 4, "Bytes per pixel of the in-memory framebuffer")
	formatFlag := flag.String("format", "bgr", "Pixel format of the in-memory framebuffer (rgb, bgr, u8)")
	bgFlag := flag.Uint("bg", 0xff, "Background intensity")
	blPinFlag := flag.String("backlight", "", "Backlight GPIO pin to switch on")
	flag.Parse()

	if os.Getenv("BOOTFB_DEBUG") != "" {
		bootfb.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if (*fbFlag == "") == (*pngFlag == "") {
		fmt.Fprintf(os.Stderr, "Usage: %s -fb <device> | -png <file>\n", os.Args[0])
		os.Exit(1)
	}
	if *bgFlag > 0xff {
		fatal(fmt.Errorf("invalid background intensity %d", *bgFlag))
	}

	if *blPinFlag != "" {
		if err := backlight(*blPinFlag); err != nil {
			fatal(err)
		}
	}

	var (
		buf  []byte
		info framebuffer.Info
	)
	if *fbFlag != "" {
		dev, err := framebuffer.Open(*fbFlag)
		if err != nil {
			fatal(err)
		}
		defer dev.Close()
		fmt.Printf("using framebuffer: %s\n", dev)
		buf, info = dev.Buffer(), dev.Info()
	} else {
		format, err := parseFormat(*formatFlag)
		if err != nil {
			fatal(err)
		}
		info = framebuffer.Info{
			Width:         *widthFlag,
			Height:        *heightFlag,
			Stride:        *strideFlag,
			BytesPerPixel: *bppFlag,
			Format:        format,
		}
		if info.Stride == 0 {
			info.Stride = info.Width
		}
		buf = make([]byte, info.Size())
	}

	config := bootfb.DefaultConfig
	config.Background = uint8(*bgFlag)
	screen, err := bootfb.New(buf, info, &config)
	if err != nil {
		fatal(err)
	}
	drawBootScreen(screen)

	if *pngFlag != "" {
		if err = writePNG(*pngFlag, screen); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", *pngFlag)
		return
	}

	fmt.Println("halted, hit control-c to stop...")
	bootfb.SpinHalt()
}

func drawBootScreen(screen *bootfb.Screen) {
	var (
		width  = screen.Width()
		size   = font.Size32
		y      = 100
		textW  = screen.TextWidth(heading, font.Bold, size)
		left   = width/2 - textW/2
		ruleY  = y + int(size) + 8
		markup = pixel.Gray(screen.Foreground())
	)
	screen.WriteStringCentered(heading, y, font.Bold, size)
	screen.DrawLine(left, ruleY, left+textW-1, ruleY, markup)
	screen.DrawRectangle(left, ruleY+4, textW, 2)
}

func backlight(name string) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return fmt.Errorf("unknown backlight GPIO pin %q", name)
	}
	return pin.Out(gpio.High)
}

func parseFormat(name string) (pixel.Format, error) {
	switch strings.ToLower(name) {
	case "rgb":
		return pixel.RGB, nil
	case "bgr":
		return pixel.BGR, nil
	case "u8", "gray", "grey":
		return pixel.U8, nil
	default:
		return 0, fmt.Errorf("unsupported pixel format %q", name)
	}
}

func writePNG(name string, screen *bootfb.Screen) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, screen); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

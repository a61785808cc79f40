package framebuffer

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/BeatGlow/bootfb/internal/ioctl"
	"github.com/BeatGlow/bootfb/pixel"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// Device is a mapped Linux framebuffer device.
type Device struct {
	f          *os.File
	buf        []byte
	info       Info
	fixedInfo  linuxFixScreenInfo
	screenInfo linuxVarScreenInfo
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x], and map its
// pixel memory.
func Open(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	d := &Device{f: f}
	if err = ioctl.Do(f.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&d.fixedInfo)); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(f.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&d.screenInfo)); err != nil {
		_ = f.Close()
		return nil, err
	}
	if d.info, err = linuxParseInfo(&d.fixedInfo, &d.screenInfo); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	if d.buf, err = unix.Mmap(int(f.Fd()), 0, int(d.fixedInfo.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}
	if len(d.buf) < d.info.Size() {
		_ = d.Close()
		return nil, fmt.Errorf("%w: device memory is %d bytes, need %d", ErrGeometry, len(d.buf), d.info.Size())
	}
	return d, nil
}

// Buffer is the mapped pixel memory. Ownership passes to the [Writer] it is given to.
func (d *Device) Buffer() []byte {
	return d.buf
}

// Info is the layout reported by the device.
func (d *Device) Info() Info {
	return d.info
}

func (d *Device) String() string {
	return fmt.Sprintf("%s (%s)", d.f.Name(), d.info)
}

// Close unmaps the pixel memory and closes the device.
func (d *Device) Close() error {
	if err := unix.Munmap(d.buf); err != nil {
		return err
	}
	return d.f.Close()
}

type linuxFixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// linuxBitField for the color
type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

func linuxParseInfo(fixed *linuxFixScreenInfo, screen *linuxVarScreenInfo) (Info, error) {
	bytesPerPixel := int(screen.BitsPerPixel+7) / 8
	if bytesPerPixel == 0 {
		return Info{}, fmt.Errorf("%w: %d bits per pixel", ErrGeometry, screen.BitsPerPixel)
	}
	stride := int(fixed.LineLength) / bytesPerPixel
	if stride == 0 {
		stride = int(screen.XresVirtual)
	}
	info := Info{
		Width:         int(screen.Xres),
		Height:        int(screen.Yres),
		Stride:        stride,
		BytesPerPixel: bytesPerPixel,
		Format:        linuxParseFormat(screen),
	}
	return info, info.validate()
}

// linuxParseFormat maps the channel bitfields to a byte order. Channel offsets count from
// the least significant bit of a little endian pixel, so red at offset 16 is stored last.
func linuxParseFormat(screen *linuxVarScreenInfo) pixel.Format {
	switch screen.BitsPerPixel {
	case 8:
		if screen.Grayscale != 0 {
			return pixel.U8
		}

	case 24, 32:
		switch {
		case screen.Red.Offset == 16 && screen.Red.Length == 8 &&
			screen.Green.Offset == 8 && screen.Green.Length == 8 &&
			screen.Blue.Offset == 0 && screen.Blue.Length == 8:
			return pixel.BGR

		case screen.Red.Offset == 0 && screen.Red.Length == 8 &&
			screen.Green.Offset == 8 && screen.Green.Length == 8 &&
			screen.Blue.Offset == 16 && screen.Blue.Length == 8:
			return pixel.RGB
		}
	}
	return pixel.Other(uint8(screen.BitsPerPixel))
}

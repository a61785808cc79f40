//go:build !linux

package framebuffer

// Device is a mapped framebuffer device.
type Device struct{}

// Open is not supported on this platform.
func Open(_ string) (*Device, error) {
	return nil, ErrNotSupported
}

// Buffer is always empty on this platform.
func (d *Device) Buffer() []byte {
	return nil
}

// Info is the zero layout on this platform.
func (d *Device) Info() Info {
	return Info{}
}

// String names the missing device.
func (d *Device) String() string {
	return "framebuffer: no device"
}

// Close is not supported on this platform.
func (d *Device) Close() error {
	return ErrNotSupported
}

// Package mmio provides accessors for memory that is read by display hardware.
//
// Go has no volatile qualifier. The accessors are never inlined, so every call is a
// distinct load or store the compiler cannot merge, reorder past the call or drop.
package mmio

// Store8 writes v to the byte at p.
//
//go:noinline
func Store8(p *byte, v byte) {
	*p = v
}

// Load8 reads the byte at p.
//
//go:noinline
func Load8(p *byte) byte {
	return *p
}

// Fill writes v to every byte of buf.
//
//go:noinline
func Fill(buf []byte, v byte) {
	for i := range buf {
		Store8(&buf[i], v)
	}
}

// Package framebuffer owns the memory-mapped pixel buffer handed off at boot.
//
// A [Writer] combines the raw buffer with its geometry ([Info]) and is the only code that
// touches the buffer. Every access goes through non-elidable loads and stores, since the
// memory is scanned out by display hardware.
//
// On Linux the [Open] call maps a framebuffer device (fbdev) and stands in for the boot
// loader hand-off, so the same writer can be exercised from a hosted process.
package framebuffer

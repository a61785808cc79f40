// Package pixel implements the pixel formats of boot-time framebuffers.
//
// A framebuffer stores every pixel as a short run of bytes whose layout depends on the
// [Format] reported by the firmware. [Encode] turns a [Color] into that byte run and
// [Decode] reverses it. Colors are compatible with Go's native [color.Color] interface.
package pixel

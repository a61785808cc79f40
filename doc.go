// Package bootfb renders to the framebuffer a kernel receives from its boot loader.
//
// A [Screen] takes sole ownership of the raw pixel memory and its geometry and draws
// pixels, lines, filled rectangles and monospace text into it. Drawing is synchronous and
// single-threaded; a Screen must not be shared between goroutines.
//
// Text uses automatic contrast: on a light background (intensity 128 and up) glyphs are
// drawn dark, on a dark background they are drawn light.
//
// Errors that leave the screen unusable, such as a pixel format without an encoding or a
// character without a glyph, are fatal: the pixel format is reset to RGB so a diagnostic
// can still be drawn, the error is logged and the configured halt routine runs.
package bootfb

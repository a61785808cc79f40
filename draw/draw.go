// Package draw rasterizes lines and filled rectangles.
//
// Nothing in this package clips: coordinates are forwarded unchanged to the destination,
// which decides what to do with pixels outside its bounds.
package draw

import "image/color"

// Image is a destination that accepts single pixels. Any [image/draw.Image] satisfies it.
type Image interface {
	Set(x, y int, c color.Color)
}

package draw

import "image/color"

// Line draws a line between (x1,y1) and (x2,y2), both end points included.
func Line(dst Image, x1, y1, x2, y2 int, c color.Color) {
	bresenham(dst, x1, y1, x2, y2, c)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w > 0 {
		bresenham(dst, x, y, x+w-1, y, c)
	}
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h > 0 {
		bresenham(dst, x, y, x, y+h-1, c)
	}
}

// Box fills the rectangle [x,x+w) × [y,y+h) in row-major order.
func Box(dst Image, x, y, w, h int, c color.Color) {
	for row := y; row < y+h; row++ {
		HorizontalLine(dst, x, row, w, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bresenham steps along the axis with the larger span, emitting exactly one pixel per
// step. Steep lines are rasterized with x and y swapped and swapped back on output.
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	steep := abs(y2-y1) > abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}

	// Drawing p1 -> p2 is equivalent to drawing p2 -> p1.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	var (
		dx    = x2 - x1
		dy    = abs(y2 - y1)
		e     = dx / 2
		ystep = -1
		y     = y1
	)
	if y1 < y2 {
		ystep = 1
	}

	for x := x1; x <= x2; x++ {
		if steep {
			dst.Set(y, x, c)
		} else {
			dst.Set(x, y, c)
		}
		e -= dy
		if e < 0 {
			y += ystep
			e += dx
		}
	}
}

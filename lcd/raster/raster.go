// Package raster draws lines, rectangles, circles and polygons into an
// fb.Buffer. All output goes through the buffer's clipped primitives.
package raster

import (
	"s3lcd/lcd/fb"
)

// Line draws from (x0, y0) to (x1, y1) inclusive. Runs along the major
// axis are emitted as one HLine or VLine.
func Line(dst *fb.Buffer, x0, y0, x1, y1 int, c fb.Color, alpha uint8) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx, dy := x1-x0, abs(y1-y0)
	err := dx >> 1
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	run := func(start, n, y int) {
		switch {
		case n == 1 && steep:
			dst.SetPixel(y, start, c, alpha)
		case n == 1:
			dst.SetPixel(start, y, c, alpha)
		case steep:
			dst.VLine(y, start, n, c, alpha)
		default:
			dst.HLine(start, y, n, c, alpha)
		}
	}

	xs, n := x0, 0
	for ; x0 <= x1; x0++ {
		n++
		err -= dy
		if err < 0 {
			err += dx
			run(xs, n, y0)
			n = 0
			y0 += ystep
			xs = x0 + 1
		}
	}
	if n > 0 {
		run(xs, n, y0)
	}
}

// Rect draws a w x h outline with its top-left corner at (x, y).
func Rect(dst *fb.Buffer, x, y, w, h int, c fb.Color, alpha uint8) {
	dst.HLine(x, y, w, c, alpha)
	dst.VLine(x, y, h, c, alpha)
	dst.HLine(x, y+h-1, w, c, alpha)
	dst.VLine(x+w-1, y, h, c, alpha)
}

// Circle draws a midpoint circle outline of radius r centered at (xm, ym).
func Circle(dst *fb.Buffer, xm, ym, r int, c fb.Color, alpha uint8) {
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r

	dst.SetPixel(xm, ym+r, c, alpha)
	dst.SetPixel(xm, ym-r, c, alpha)
	dst.SetPixel(xm+r, ym, c, alpha)
	dst.SetPixel(xm-r, ym, c, alpha)
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		dst.SetPixel(xm+x, ym+y, c, alpha)
		dst.SetPixel(xm-x, ym+y, c, alpha)
		dst.SetPixel(xm+x, ym-y, c, alpha)
		dst.SetPixel(xm-x, ym-y, c, alpha)
		dst.SetPixel(xm+y, ym+x, c, alpha)
		dst.SetPixel(xm-y, ym+x, c, alpha)
		dst.SetPixel(xm+y, ym-x, c, alpha)
		dst.SetPixel(xm-y, ym-x, c, alpha)
	}
}

// FillCircle fills a circle of radius r with vertical spans.
func FillCircle(dst *fb.Buffer, xm, ym, r int, c fb.Color, alpha uint8) {
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r

	dst.VLine(xm, ym-y, 2*y+1, c, alpha)
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		dst.VLine(xm+x, ym-y, 2*y+1, c, alpha)
		dst.VLine(xm+y, ym-x, 2*x+1, c, alpha)
		dst.VLine(xm-x, ym-y, 2*y+1, c, alpha)
		dst.VLine(xm-y, ym-x, 2*x+1, c, alpha)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Package hershey draws stroke fonts in the Hershey vector format.
//
// Index holds one little-endian uint16 offset into Data per character code
// 32..127. A glyph is a pair count, the left and right extents and then the
// pairs. Every coordinate byte is stored offset by 'R'. A pair starting
// with ' ' lifts the pen.
package hershey

import (
	"errors"
	"fmt"
	"math"

	"s3lcd/lcd/fb"
	"s3lcd/lcd/raster"
	"s3lcd/lcd/text"
)

const (
	first  = 32
	last   = 127
	origin = 'R'
	penUp  = ' '
)

var ErrMalformedFont = errors.New("hershey: malformed font")

type Font struct {
	Name  string
	Index []byte
	Data  []byte
}

type glyph struct {
	n     int
	left  int
	right int
	pairs []byte
}

func (f *Font) glyph(c byte) (glyph, error) {
	i := int(c-first) * 2
	if i+1 >= len(f.Index) {
		return glyph{}, fmt.Errorf("%w: no index for %q", ErrMalformedFont, c)
	}
	off := int(f.Index[i]) | int(f.Index[i+1])<<8
	if off+3 > len(f.Data) {
		return glyph{}, fmt.Errorf("%w: glyph %q at %d", ErrMalformedFont, c, off)
	}
	g := glyph{
		n:     int(int8(f.Data[off])),
		left:  int(int8(f.Data[off+1])) - origin,
		right: int(int8(f.Data[off+2])) - origin,
	}
	if g.n < 0 || off+3+2*g.n > len(f.Data) {
		return glyph{}, fmt.Errorf("%w: glyph %q overruns data", ErrMalformedFont, c)
	}
	g.pairs = f.Data[off+3 : off+3+2*g.n]
	return g, nil
}

func drawable(c byte) bool { return c >= first && c <= last }

// scaled rounds half up, also for negative coordinates.
func scaled(v int, scale float64) int {
	return int(math.Floor(scale*float64(v) + 0.5))
}

// Draw strokes src at (x, y) and returns the horizontal advance.
func Draw(dst *fb.Buffer, f *Font, src text.Source, x, y int, c fb.Color, scale float64, alpha uint8) (int, error) {
	s, err := src.Bytes()
	if err != nil {
		return 0, err
	}
	glyphs := make([]glyph, 0, len(s))
	for _, ch := range s {
		if !drawable(ch) {
			continue
		}
		g, err := f.glyph(ch)
		if err != nil {
			return 0, err
		}
		glyphs = append(glyphs, g)
	}

	pos := x
	for _, g := range glyphs {
		left := scaled(g.left, scale)
		right := scaled(g.right, scale)

		var fromX, fromY int
		up := true
		for i := 0; i < g.n; i++ {
			p := g.pairs[2*i:]
			if p[0] == penUp {
				up = true
				continue
			}
			vx := scaled(int(int8(p[0]))-origin, scale)
			vy := scaled(int(int8(p[1]))-origin, scale)
			toX, toY := pos+vx-left, y+vy
			if !up {
				raster.Line(dst, fromX, fromY, toX, toY, c, alpha)
			}
			fromX, fromY = toX, toY
			up = false
		}
		pos += right - left
	}
	return pos - x, nil
}

// Measure returns the advance of src at scale. Characters the font cannot
// resolve count as zero.
func Measure(f *Font, src text.Source, scale float64) int {
	s, err := src.Bytes()
	if err != nil {
		return 0
	}
	w := 0
	for _, ch := range s {
		if !drawable(ch) {
			continue
		}
		g, err := f.glyph(ch)
		if err != nil {
			continue
		}
		w += g.right - g.left
	}
	return int(math.Floor(float64(w)*scale + 0.5))
}

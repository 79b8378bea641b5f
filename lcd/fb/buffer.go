// Package fb is the RGB565 framebuffer and its compositing primitives.
//
// Every drawing primitive in s3lcd ends up in SetPixel, FillRect, HLine or
// VLine. Coordinates are signed; anything outside the buffer is clipped
// unless the wrap options map it back inside.
package fb

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Options controls coordinate wrapping.
type Options uint8

const (
	// WrapV wraps y modulo the buffer height.
	WrapV Options = 0x01
	// WrapH wraps x modulo the buffer width.
	WrapH Options = 0x02
	// Wrap wraps both axes.
	Wrap = WrapV | WrapH
)

// ErrShortBuffer reports source pixel data smaller than its declared size.
var ErrShortBuffer = errors.New("fb: buffer too small for width and height")

// Buffer is a width x height RGB565 framebuffer stored row-major.
// len(Pix()) == Width()*Height() always holds.
type Buffer struct {
	width  int
	height int
	opts   Options
	pix    []uint16
}

// New allocates a cleared buffer.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint16, width*height),
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Options returns the active wrap options.
func (b *Buffer) Options() Options { return b.opts }

// SetOptions replaces the wrap options.
func (b *Buffer) SetOptions(o Options) { b.opts = o & Wrap }

// Pix exposes the backing pixels.
func (b *Buffer) Pix() []uint16 { return b.pix }

// Resize changes the logical size. Storage is reused when the pixel count
// is unchanged and cleared otherwise.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width*height != len(b.pix) {
		b.pix = make([]uint16, width*height)
	}
	b.width, b.height = width, height
}

// Release drops the backing storage. The buffer becomes 0x0.
func (b *Buffer) Release() {
	b.pix = nil
	b.width, b.height = 0, 0
}

func mod(x, m int) int {
	r := x % m
	if r < 0 {
		return r + m
	}
	return r
}

func (b *Buffer) wrap(x, y int) (int, int) {
	if b.opts&WrapH != 0 && b.width > 0 && (x < 0 || x >= b.width) {
		x = mod(x, b.width)
	}
	if b.opts&WrapV != 0 && b.height > 0 && (y < 0 || y >= b.height) {
		y = mod(y, b.height)
	}
	return x, y
}

// Pixel returns the color at (x, y), or Black outside the buffer.
func (b *Buffer) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Black
	}
	return Color(b.pix[y*b.width+x])
}

// SetPixel writes c at (x, y), blending when alpha < 255. The coordinate
// is wrapped first, then clipped.
func (b *Buffer) SetPixel(x, y int, c Color, alpha uint8) {
	x, y = b.wrap(x, y)
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	p := &b.pix[y*b.width+x]
	if alpha < 255 {
		c = Blend(c, Color(*p), alpha)
	}
	*p = uint16(c)
}

// FillRect fills the rectangle clipped to the buffer.
func (b *Buffer) FillRect(x, y, w, h int, c Color, alpha uint8) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x >= b.width || y >= b.height || w <= 0 || h <= 0 || alpha == 0 {
		return
	}
	if x+w > b.width {
		w = b.width - x
	}
	if y+h > b.height {
		h = b.height - y
	}

	if alpha == 255 {
		v := uint16(c)
		for row := y; row < y+h; row++ {
			line := b.pix[row*b.width+x : row*b.width+x+w]
			for i := range line {
				line[i] = v
			}
		}
		return
	}
	for row := y; row < y+h; row++ {
		line := b.pix[row*b.width+x : row*b.width+x+w]
		for i, p := range line {
			line[i] = uint16(Blend(c, Color(p), alpha))
		}
	}
}

// HLine draws w pixels to the right of (x, y).
func (b *Buffer) HLine(x, y, w int, c Color, alpha uint8) {
	if b.opts&Wrap == 0 {
		b.FillRect(x, y, w, 1, c, alpha)
		return
	}
	for d := 0; d < w; d++ {
		b.SetPixel(x+d, y, c, alpha)
	}
}

// VLine draws h pixels below (x, y).
func (b *Buffer) VLine(x, y, h int, c Color, alpha uint8) {
	if b.opts&Wrap == 0 {
		b.FillRect(x, y, 1, h, c, alpha)
		return
	}
	for d := 0; d < h; d++ {
		b.SetPixel(x, y+d, c, alpha)
	}
}

// Fill paints every pixel.
func (b *Buffer) Fill(c Color) {
	v := uint16(c)
	for i := range b.pix {
		b.pix[i] = v
	}
}

// Clear sets every byte of the buffer to v, so each pixel becomes v<<8|v.
func (b *Buffer) Clear(v uint8) {
	p := uint16(v)<<8 | uint16(v)
	for i := range b.pix {
		b.pix[i] = p
	}
}

// Scroll shifts the contents by (dx, dy). Pixels whose source lies
// outside the buffer get fill.
func (b *Buffer) Scroll(dx, dy int, fill Color) {
	x0, x1, sx := 0, b.width, 1
	if dx > 0 {
		x0, x1, sx = b.width-1, -1, -1
	}
	y0, y1, sy := 0, b.height, 1
	if dy > 0 {
		y0, y1, sy = b.height-1, -1, -1
	}

	for y := y0; y != y1; y += sy {
		srcY := y - dy
		for x := x0; x != x1; x += sx {
			srcX := x - dx
			if srcX >= 0 && srcX < b.width && srcY >= 0 && srcY < b.height {
				b.pix[y*b.width+x] = b.pix[srcY*b.width+srcX]
			} else {
				b.pix[y*b.width+x] = uint16(fill)
			}
		}
	}
}

// Blit composites a little-endian RGB565 image of w x h pixels at (x, y).
// Destination pixels outside the buffer are skipped one by one.
func (b *Buffer) Blit(src []byte, x, y, w, h int, alpha uint8) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("fb: blit %dx%d: %w", w, h, ErrShortBuffer)
	}
	if len(src) < w*h*2 {
		return fmt.Errorf("fb: blit %dx%d from %d bytes: %w", w, h, len(src), ErrShortBuffer)
	}
	b.blit(func(i int) Color { return Color(binary.LittleEndian.Uint16(src[i*2:])) }, x, y, w, h, alpha)
	return nil
}

// BlitPixels is Blit over native pixels.
func (b *Buffer) BlitPixels(src []Color, x, y, w, h int, alpha uint8) error {
	if w < 0 || h < 0 || len(src) < w*h {
		return fmt.Errorf("fb: blit %dx%d from %d pixels: %w", w, h, len(src), ErrShortBuffer)
	}
	b.blit(func(i int) Color { return src[i] }, x, y, w, h, alpha)
	return nil
}

func (b *Buffer) blit(at func(int) Color, x, y, w, h int, alpha uint8) {
	if alpha == 0 {
		return
	}
	for yy := 0; yy < h; yy++ {
		dy := y + yy
		if dy < 0 || dy >= b.height {
			continue
		}
		row := dy * b.width
		for xx := 0; xx < w; xx++ {
			dx := x + xx
			if dx < 0 || dx >= b.width {
				continue
			}
			c := at(yy*w + xx)
			if alpha != 255 {
				c = Blend(c, Color(b.pix[row+dx]), alpha)
			}
			b.pix[row+dx] = uint16(c)
		}
	}
}

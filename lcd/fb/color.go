package fb

import (
	"image/color"
	"math/bits"

	"tinygo.org/x/drivers/pixel"
)

// Color is an RGB565 value: rrrrrggggggbbbbb.
type Color uint16

// Named colors.
const (
	Black   Color = 0x0000
	Blue    Color = 0x001F
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
	Yellow  Color = 0xFFE0
	White   Color = 0xFFFF
)

// RGB565 packs 8-bit channels, dropping the low bits.
func RGB565(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b&0xF8)>>3)
}

// FromRGBA converts c, ignoring alpha.
func FromRGBA(c color.RGBA) Color { return RGB565(c.R, c.G, c.B) }

// RGB888 expands c by bit replication, so RGB565(c.RGB888()) == c.
func (c Color) RGB888() (r, g, b uint8) {
	v := pixel.RGB565BE(bits.ReverseBytes16(uint16(c))).RGBA()
	return v.R, v.G, v.B
}

// RGBA returns c as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.RGB888()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Swap exchanges the two bytes of c.
func (c Color) Swap() Color { return Color(bits.ReverseBytes16(uint16(c))) }

// Ink is a Color or Transparent.
type Ink int32

// Transparent ink is never written.
const Transparent Ink = -1

// Ink returns c as opaque ink.
func (c Color) Ink() Ink { return Ink(c) }

// Color reports the color of k and whether it should be written.
func (k Ink) Color() (Color, bool) {
	if k < 0 {
		return 0, false
	}
	return Color(k), true
}

// Blend mixes fg over bg per 5/6/5 channel: (fg*a + bg*(255-a)) >> 8.
// alpha 0 yields bg and 255 yields fg exactly. Equal colors are returned
// unchanged; the >>8 would otherwise darken them by one step.
func Blend(fg, bg Color, alpha uint8) Color {
	switch alpha {
	case 0:
		return bg
	case 255:
		return fg
	}
	if fg == bg {
		return fg
	}
	a := uint32(alpha)
	na := 255 - a
	r := (uint32(fg>>11)*a + uint32(bg>>11)*na) >> 8
	g := (uint32(fg>>5&0x3F)*a + uint32(bg>>5&0x3F)*na) >> 8
	b := (uint32(fg&0x1F)*a + uint32(bg&0x1F)*na) >> 8
	return Color(r<<11 | g<<5 | b)
}

package bitfont

import (
	"image"
	"image/color"

	"s3lcd/lcd/internal/bitstream"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// FromFace builds a 1-bpp proportional font from the printable ASCII range
// of face. Each glyph is trimmed to its inked columns plus one column of
// spacing; blank glyphs keep half the face advance.
func FromFace(name string, face *basicfont.Face) *Font {
	h := face.Ascent + face.Descent
	f := &Font{Name: name, BPP: 1, Height: h, OffsetWidth: 3}

	var bits []bool
	var mapRunes []rune
	for r := rune(' '); r <= '~'; r++ {
		rect, ok := glyphRect(face, r)
		if !ok {
			continue
		}
		lo, hi := rect.Max.X, rect.Min.X-1
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				if inked(face.Mask, x, y) {
					lo, hi = min(lo, x), max(hi, x)
				}
			}
		}
		if hi < lo {
			lo, hi = rect.Min.X, rect.Min.X+face.Advance/2-1
		}
		w := hi - lo + 2
		if w > 255 {
			continue
		}

		off := len(bits)
		for y := rect.Min.Y; y < rect.Min.Y+h; y++ {
			for x := lo; x < lo+w; x++ {
				bits = append(bits, x <= hi && y < rect.Max.Y && inked(face.Mask, x, y))
			}
		}
		f.Offsets = append(f.Offsets, byte(off>>16), byte(off>>8), byte(off))
		f.Widths = append(f.Widths, byte(w))
		mapRunes = append(mapRunes, r)
	}
	f.Map = string(mapRunes)

	f.Bitmaps = make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			f.Bitmaps[i>>3] |= 0x80 >> (i & 7)
		}
	}
	return f
}

func glyphRect(face *basicfont.Face, r rune) (image.Rectangle, bool) {
	h := face.Ascent + face.Descent
	for _, rg := range face.Ranges {
		if r >= rg.Low && r < rg.High {
			y := (int(r-rg.Low) + rg.Offset) * h
			return image.Rect(0, y, face.Width, y+h), true
		}
	}
	return image.Rectangle{}, false
}

func inked(m image.Image, x, y int) bool {
	_, _, _, a := m.At(x, y).RGBA()
	return a >= 0x8000
}

// Fonter exposes f to tinyfont. Higher bit depths draw as dimmed ink.
// The returned value reuses one glyph and is not safe for concurrent use.
func (f *Font) Fonter() tinyfont.Fonter {
	return &fonter{f: f}
}

type fonter struct {
	f *Font
	g glyph
}

type glyph struct {
	f *Font
	r rune
	i int
}

func (ft *fonter) GetYAdvance() uint8 { return uint8(ft.f.Height) }

func (ft *fonter) GetGlyph(r rune) tinyfont.Glypher {
	ft.g = glyph{f: ft.f, r: r, i: ft.f.index(r)}
	if ft.g.i >= len(ft.f.Widths) || (ft.g.i+1)*ft.f.OffsetWidth > len(ft.f.Offsets) {
		ft.g.i = -1
	}
	return &ft.g
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	info := tinyfont.GlyphInfo{
		Rune:    g.r,
		Height:  uint8(g.f.Height),
		YOffset: int8(1 - g.f.Height),
	}
	if g.i >= 0 {
		info.Width = g.f.Widths[g.i]
		info.XAdvance = g.f.Widths[g.i]
	}
	return info
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	if g.i < 0 {
		return
	}
	w := int(g.f.Widths[g.i])
	off := g.f.offset(g.i)
	if !bitstream.Fits(g.f.Bitmaps, off, w*g.f.Height*g.f.BPP) {
		return
	}
	top := y + int16(1-g.f.Height)
	full := uint32(1)<<g.f.BPP - 1
	br := bitstream.NewReader(g.f.Bitmaps, off)
	for yy := 0; yy < g.f.Height; yy++ {
		for xx := 0; xx < w; xx++ {
			v := br.Read(g.f.BPP)
			if v == 0 {
				continue
			}
			ink := c
			if v != full {
				ink = scaleRGBA(c, uint8(v*255/full))
			}
			display.SetPixel(x+int16(xx), top+int16(yy), ink)
		}
	}
}

func scaleRGBA(c color.RGBA, factor uint8) color.RGBA {
	f := uint16(factor)
	return color.RGBA{
		R: uint8(uint16(c.R) * f / 255),
		G: uint8(uint16(c.G) * f / 255),
		B: uint8(uint16(c.B) * f / 255),
		A: c.A,
	}
}

// Package mono renders fixed-cell bitmap fonts.
package mono

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"s3lcd/lcd/fb"
	"s3lcd/lcd/text"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var ErrMalformedFont = errors.New("mono: malformed font")

// Font covers codes First..Last. Each glyph is Height rows of Width/8
// bytes, most significant bit leftmost.
type Font struct {
	Name   string
	Width  int
	Height int
	First  byte
	Last   byte
	Data   []byte
}

func (f *Font) stride() int { return f.Width / 8 }

// Validate checks that Data holds every glyph.
func (f *Font) Validate() error {
	if f.Width < 8 || f.Width%8 != 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d cell", ErrMalformedFont, f.Width, f.Height)
	}
	if f.Last < f.First {
		return fmt.Errorf("%w: range %d..%d", ErrMalformedFont, f.First, f.Last)
	}
	need := (int(f.Last-f.First) + 1) * f.Height * f.stride()
	if len(f.Data) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrMalformedFont, len(f.Data), need)
	}
	return nil
}

func (f *Font) has(c byte) bool { return c >= f.First && c <= f.Last }

// Write draws src with the top-left of the first cell at (x, y) and returns
// the advance. Codes outside the font are skipped without advancing.
func Write(dst *fb.Buffer, f *Font, src text.Source, x, y int, fg, bg fb.Ink, alpha uint8) (int, error) {
	s, err := src.Bytes()
	if err != nil {
		return 0, err
	}
	if err := f.Validate(); err != nil {
		return 0, err
	}
	fgc, drawFG := fg.Color()
	bgc, drawBG := bg.Color()
	wide := f.stride()

	x0 := x
	for _, c := range s {
		if !f.has(c) {
			continue
		}
		idx := int(c-f.First) * f.Height * wide
		for row := 0; row < f.Height; row++ {
			px := x
			for col := 0; col < wide; col++ {
				bits := f.Data[idx]
				idx++
				for bit := 7; bit >= 0; bit-- {
					if bits>>bit&1 != 0 {
						if drawFG {
							dst.SetPixel(px, y+row, fgc, alpha)
						}
					} else if drawBG {
						dst.SetPixel(px, y+row, bgc, alpha)
					}
					px++
				}
			}
		}
		x += f.Width
	}
	return x - x0, nil
}

// Measure returns Width times the number of drawable codes in src.
func Measure(f *Font, src text.Source) int {
	s, err := src.Bytes()
	if err != nil {
		return 0
	}
	n := 0
	for _, c := range s {
		if f.has(c) {
			n++
		}
	}
	return n * f.Width
}

// FromFace rasterizes the printable ASCII range of face into a Font,
// padding the cell width to a whole byte.
func FromFace(name string, face *basicfont.Face) *Font {
	h := face.Ascent + face.Descent
	f := &Font{
		Name:   name,
		Width:  (face.Advance + 7) / 8 * 8,
		Height: h,
		First:  ' ',
		Last:   '~',
	}
	wide := f.stride()
	f.Data = make([]byte, (int(f.Last-f.First)+1)*h*wide)
	for c := int(f.First); c <= int(f.Last); c++ {
		rect, ok := glyphRect(face, rune(c))
		if !ok {
			continue
		}
		base := (c - int(f.First)) * h * wide
		for row := 0; row < h; row++ {
			for col := 0; col < face.Width && col < f.Width; col++ {
				_, _, _, a := face.Mask.At(rect.Min.X+col, rect.Min.Y+row).RGBA()
				if a >= 0x8000 {
					f.Data[base+row*wide+col/8] |= 0x80 >> (col % 8)
				}
			}
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

// Fonter exposes f to tinyfont and tinyterm. Codes outside the font draw
// nothing but still advance one cell. The returned value reuses one glyph
// and is not safe for concurrent use.
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
}

func (ft *fonter) GetYAdvance() uint8 { return uint8(ft.f.Height) }

func (ft *fonter) GetGlyph(r rune) tinyfont.Glypher {
	ft.g = glyph{f: ft.f, r: r}
	return &ft.g
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    uint8(g.f.Width),
		Height:   uint8(g.f.Height),
		XAdvance: uint8(g.f.Width),
		YOffset:  int8(1 - g.f.Height),
	}
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	if g.r < 0 || g.r > 0xFF || !g.f.has(byte(g.r)) || g.f.Validate() != nil {
		return
	}
	wide := g.f.stride()
	idx := int(byte(g.r)-g.f.First) * g.f.Height * wide
	top := y + int16(1-g.f.Height)
	for row := 0; row < g.f.Height; row++ {
		for col := 0; col < g.f.Width; col++ {
			if g.f.Data[idx+row*wide+col/8]&(0x80>>(col%8)) != 0 {
				display.SetPixel(x+int16(col), top+int16(row), c)
			}
		}
	}
}

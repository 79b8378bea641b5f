// Package bitfont renders proportional bitmap fonts.
//
// A font lists its characters in Map. Widths[i] and the big-endian bit
// offset at Offsets[i*OffsetWidth:] describe the i-th character, whose
// Height x Widths[i] pixels of BPP bits each start at that offset in
// Bitmaps. A zero pixel is background, anything else is foreground.
package bitfont

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"s3lcd/lcd/fb"
	"s3lcd/lcd/internal/bitstream"
	"s3lcd/lcd/text"
)

var ErrMalformedFont = errors.New("bitfont: malformed font")

type Font struct {
	Name        string
	BPP         int
	Height      int
	OffsetWidth int
	Widths      []byte
	Offsets     []byte
	Bitmaps     []byte
	Map         string
}

// Validate checks that every mapped glyph lies within the font tables.
func (f *Font) Validate() error {
	if f.BPP < 1 || f.BPP > 8 {
		return fmt.Errorf("%w: bpp %d", ErrMalformedFont, f.BPP)
	}
	if f.Height < 0 {
		return fmt.Errorf("%w: height %d", ErrMalformedFont, f.Height)
	}
	if f.OffsetWidth < 1 || f.OffsetWidth > 3 {
		return fmt.Errorf("%w: offset width %d", ErrMalformedFont, f.OffsetWidth)
	}
	n := utf8.RuneCountInString(f.Map)
	if len(f.Widths) < n {
		return fmt.Errorf("%w: %d widths for %d characters", ErrMalformedFont, len(f.Widths), n)
	}
	if len(f.Offsets) < n*f.OffsetWidth {
		return fmt.Errorf("%w: %d offset bytes for %d characters", ErrMalformedFont, len(f.Offsets), n)
	}
	for i := 0; i < n; i++ {
		bits := int(f.Widths[i]) * f.Height * f.BPP
		if !bitstream.Fits(f.Bitmaps, f.offset(i), bits) {
			return fmt.Errorf("%w: glyph %d overruns bitmaps", ErrMalformedFont, i)
		}
	}
	return nil
}

func (f *Font) offset(i int) int {
	o := 0
	for _, b := range f.Offsets[i*f.OffsetWidth : (i+1)*f.OffsetWidth] {
		o = o<<8 | int(b)
	}
	return o
}

// index returns the position of r in Map, or -1.
func (f *Font) index(r rune) int {
	i := 0
	for _, m := range f.Map {
		if m == r {
			return i
		}
		i++
	}
	return -1
}

// Write draws src with its top-left corner at (x, y) and returns the
// advance. Characters missing from the font are skipped.
func Write(dst *fb.Buffer, f *Font, src text.Source, x, y int, fg, bg fb.Ink, alpha uint8) (int, error) {
	runes, err := src.Runes()
	if err != nil {
		return 0, err
	}
	if err := f.Validate(); err != nil {
		return 0, err
	}
	fgc, drawFG := fg.Color()
	bgc, drawBG := bg.Color()

	advance := 0
	for _, r := range runes {
		i := f.index(r)
		if i < 0 {
			continue
		}
		w := int(f.Widths[i])
		br := bitstream.NewReader(f.Bitmaps, f.offset(i))
		for yy := 0; yy < f.Height; yy++ {
			for xx := 0; xx < w; xx++ {
				if br.Read(f.BPP) != 0 {
					if drawFG {
						dst.SetPixel(x+xx, y+yy, fgc, alpha)
					}
				} else if drawBG {
					dst.SetPixel(x+xx, y+yy, bgc, alpha)
				}
			}
		}
		x += w
		advance += w
	}
	return advance, nil
}

// Measure returns the advance Write would produce for src.
func Measure(f *Font, src text.Source) int {
	runes, err := src.Runes()
	if err != nil {
		return 0
	}
	w := 0
	for _, r := range runes {
		if i := f.index(r); i >= 0 && i < len(f.Widths) {
			w += int(f.Widths[i])
		}
	}
	return w
}

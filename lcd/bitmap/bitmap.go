// Package bitmap draws inline RGB565 images and palette-indexed bitmaps.
package bitmap

import (
	"errors"
	"fmt"

	"s3lcd/lcd/asset"
	"s3lcd/lcd/fb"
	"s3lcd/lcd/internal/bitstream"
)

var (
	ErrFrameIndex   = errors.New("bitmap: index out of range")
	ErrPaletteIndex = errors.New("bitmap: palette index out of range")
	ErrShortBitmap  = errors.New("bitmap: bitmap data too short")
	ErrFormat       = errors.New("bitmap: bad format")
	ErrInvalid      = errors.New("bitmap: invalid source")
)

// Source is one of Inline, *Palette or the result of Named.
type Source interface {
	isSource()
}

// Inline is a little-endian RGB565 image.
type Inline struct {
	Pixels []byte
	Width  int
	Height int
}

// Palette is a sequence of Frames images (or one when Frames is 0), each
// Width x Height pixels of BPP-bit palette indices packed MSB first.
type Palette struct {
	Width   int
	Height  int
	BPP     int
	Palette []fb.Color
	Bitmap  []byte
	Frames  int
}

type named struct {
	p    asset.Provider
	name string
}

func (Inline) isSource()   {}
func (*Palette) isSource() {}
func (named) isSource()    {}

// Named resolves a serialized Palette from p when drawn.
func Named(p asset.Provider, name string) Source {
	return named{p: p, name: name}
}

// Options controls Draw. The zero value draws nothing: set Alpha to 255
// for an opaque copy.
type Options struct {
	// Index selects the frame of a Palette.
	Index int
	// Alpha 255 is opaque and 0 leaves the destination untouched.
	Alpha uint8
	// SwapBytes marks palette entries as stored byte-swapped.
	SwapBytes bool
}

// Draw composites src with its top-left corner at (x, y). All validation
// happens before the first pixel is written.
func Draw(dst *fb.Buffer, src Source, x, y int, opts Options) error {
	switch s := src.(type) {
	case Inline:
		if s.Width < 0 || s.Height < 0 || len(s.Pixels) < s.Width*s.Height*2 {
			return fmt.Errorf("bitmap: inline %dx%d from %d bytes: %w", s.Width, s.Height, len(s.Pixels), fb.ErrShortBuffer)
		}
		return dst.Blit(s.Pixels, x, y, s.Width, s.Height, opts.Alpha)
	case *Palette:
		if s == nil {
			return fmt.Errorf("bitmap: nil palette: %w", ErrInvalid)
		}
		return s.draw(dst, x, y, opts)
	case named:
		data, err := s.p.Lookup(s.name)
		if err != nil {
			return err
		}
		p, err := Parse(data)
		if err != nil {
			return fmt.Errorf("bitmap: %s: %w", s.name, err)
		}
		return p.draw(dst, x, y, opts)
	case nil:
		return fmt.Errorf("bitmap: nil source: %w", ErrInvalid)
	default:
		return fmt.Errorf("bitmap: source %T: %w", src, ErrFormat)
	}
}

func (p *Palette) frameBits() int { return p.Width * p.Height * p.BPP }

// start validates frame i and returns its first bit.
func (p *Palette) start(i int) (int, error) {
	if p.Width < 0 || p.Height < 0 || p.BPP < 1 || p.BPP > 8 {
		return 0, fmt.Errorf("%w: %dx%d at %d bpp", ErrFormat, p.Width, p.Height, p.BPP)
	}
	frames := max(p.Frames, 1)
	if i < 0 || i >= frames {
		return 0, fmt.Errorf("bitmap: frame %d of %d: %w", i, frames, ErrFrameIndex)
	}
	pos := p.frameBits() * i
	if !bitstream.Fits(p.Bitmap, pos, p.frameBits()) {
		return 0, fmt.Errorf("bitmap: frame %d needs bits %d..%d of %d: %w",
			i, pos, pos+p.frameBits(), len(p.Bitmap)*8, ErrShortBitmap)
	}
	return pos, nil
}

func (p *Palette) draw(dst *fb.Buffer, x, y int, opts Options) error {
	pos, err := p.start(opts.Index)
	if err != nil {
		return err
	}
	br := bitstream.NewReader(p.Bitmap, pos)
	for i := 0; i < p.Width*p.Height; i++ {
		if ci := int(br.Read(p.BPP)); ci >= len(p.Palette) {
			return fmt.Errorf("bitmap: pixel %d uses color %d of %d: %w", i, ci, len(p.Palette), ErrPaletteIndex)
		}
	}

	br = bitstream.NewReader(p.Bitmap, pos)
	for yy := 0; yy < p.Height; yy++ {
		for xx := 0; xx < p.Width; xx++ {
			c := p.Palette[br.Read(p.BPP)]
			if opts.SwapBytes {
				c = c.Swap()
			}
			dst.SetPixel(x+xx, y+yy, c, opts.Alpha)
		}
	}
	return nil
}

// MapBits expands a 1-bpp bit array, each row padded to a whole byte, into
// fg and bg pixels for rows of width pixels. It stops when dst is full and
// returns the number of pixels written.
func MapBits(bits []byte, dst []fb.Color, width int, fg, bg fb.Color) int {
	if width <= 0 {
		return 0
	}
	n, rowPos := 0, 0
	for _, b := range bits {
		for bit := 7; bit >= 0; bit-- {
			if n == len(dst) {
				return n
			}
			if b>>bit&1 != 0 {
				dst[n] = fg
			} else {
				dst[n] = bg
			}
			n++
			rowPos++
			if rowPos >= width {
				rowPos = 0
				break
			}
		}
	}
	return n
}

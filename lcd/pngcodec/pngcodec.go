// Package pngcodec draws PNG images into a framebuffer and saves
// framebuffer regions as PNG files.
package pngcodec

import (
	"errors"
	"fmt"
	"io"

	"s3lcd/hal"
	"s3lcd/lcd/fb"
	"s3lcd/lcd/internal/input"
)

var ErrUnsupported = errors.New("pngcodec: unsupported image")

// DefaultBlock is the feed size used when no buffer is supplied.
const DefaultBlock = 4096

// Tile is a run of pixels of a single non-premultiplied RGBA color.
type Tile struct {
	X, Y, W, H int
	RGBA       [4]uint8
}

// Decoder decodes a PNG stream into tiles.
type Decoder interface {
	Decode(r io.Reader, draw func(Tile)) error
}

type Input = input.Input

func FromBytes(b []byte) Input { return input.Bytes(b) }

func FromFile(s hal.Storage, name string) Input { return input.File(s, name) }

type options struct {
	buf []byte
	dec Decoder
}

type Option func(*options)

// WithBuffer sets the block buffer the input is fed through.
func WithBuffer(buf []byte) Option {
	return func(o *options) { o.buf = buf }
}

func WithDecoder(d Decoder) Option {
	return func(o *options) { o.dec = d }
}

// Draw decodes in onto dst with the image's top-left corner at (x, y).
// Tiles starting right of or below dst are dropped; the rest are filled
// with their alpha.
func Draw(dst *fb.Buffer, in Input, x, y int, opts ...Option) (err error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if len(o.buf) == 0 {
		o.buf = make([]byte, DefaultBlock)
	}
	if o.dec == nil {
		o.dec = newDefaultDecoder()
	}

	r, closeFn, err := in.Open()
	if err != nil {
		return fmt.Errorf("pngcodec: open %s: %w", in.Name(), err)
	}
	defer func() {
		if cerr := closeFn(); err == nil && cerr != nil {
			err = fmt.Errorf("pngcodec: close %s: %w", in.Name(), cerr)
		}
	}()

	err = o.dec.Decode(NewFeeder(r, o.buf), func(t Tile) {
		if t.X+x >= dst.Width() || t.Y+y >= dst.Height() {
			return
		}
		c := fb.RGB565(t.RGBA[0], t.RGBA[1], t.RGBA[2])
		dst.FillRect(t.X+x, t.Y+y, t.W, t.H, c, t.RGBA[3])
	})
	if err != nil {
		return fmt.Errorf("png decompress failed: %w", err)
	}
	return nil
}

// Feeder hands a source to a decoder one block at a time through a
// borrowed buffer. Bytes the decoder has not consumed are moved to the
// front of the buffer before the next block is read.
type Feeder struct {
	src    io.Reader
	buf    []byte
	r, w   int
	blocks int
}

func NewFeeder(src io.Reader, buf []byte) *Feeder {
	return &Feeder{src: src, buf: buf}
}

// Blocks reports how many blocks have been read from the source.
func (f *Feeder) Blocks() int { return f.blocks }

func (f *Feeder) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if f.r == f.w {
		if err := f.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, f.buf[f.r:f.w])
	f.r += n
	return n, nil
}

func (f *Feeder) fill() error {
	remain := copy(f.buf, f.buf[f.r:f.w])
	f.r, f.w = 0, remain
	for tries := 0; tries < 100; tries++ {
		n, err := f.src.Read(f.buf[f.w:])
		f.w += n
		if n > 0 {
			f.blocks++
			return nil
		}
		if err != nil {
			return err
		}
	}
	return io.ErrNoProgress
}

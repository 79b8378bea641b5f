// Package jpegdec decodes baseline JPEG images into a framebuffer or into
// a cropped RGB565 pixel buffer.
//
// A decode runs in two stages. Prepare reads the header and reports the
// image size; Decompress emits the image as RGB565 blocks. A failure in
// either stage is reported as an *Error carrying the stage and a status
// code.
package jpegdec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"s3lcd/hal"
	"s3lcd/lcd/fb"
	"s3lcd/lcd/internal/input"
)

// Status numbers follow the TJpgDec result codes.
type Status int

const (
	OK Status = iota
	Interrupted
	InputErr
	Mem1
	Mem2
	Param
	Format1
	Format2
	Format3
)

type Stage uint8

const (
	StagePrepare Stage = iota
	StageDecompress
)

func (s Stage) String() string {
	if s == StagePrepare {
		return "prepare"
	}
	return "decompress"
}

type Error struct {
	Stage  Stage
	Status Status
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("jpg %s failed: %d", e.Stage, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	// ErrInterrupted wraps errors returned by a block consumer.
	ErrInterrupted = errors.New("jpegdec: output interrupted")
	// ErrUnsupported marks images a decoder cannot handle.
	ErrUnsupported = errors.New("jpegdec: unsupported image")
	ErrCrop        = errors.New("jpegdec: bad crop rectangle")
)

// Rect is a block of the decoded image in image coordinates.
type Rect struct {
	X, Y, W, H int
}

// BlockDecoder is a two-stage JPEG decoder. Pixels passed to out are
// RGB565, W*H long, row-major and only valid during the call.
type BlockDecoder interface {
	Prepare(r io.Reader) (w, h int, err error)
	Decompress(out func(Rect, []uint16) error) error
}

type Input = input.Input

func FromBytes(b []byte) Input { return input.Bytes(b) }

// FromFile reads name from s. The file is closed before Draw or Decode
// returns.
func FromFile(s hal.Storage, name string) Input { return input.File(s, name) }

type options struct {
	dec BlockDecoder
}

type Option func(*options)

// WithDecoder selects the decoder back end. A decoder serves one call.
func WithDecoder(d BlockDecoder) Option {
	return func(o *options) { o.dec = d }
}

func newOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.dec == nil {
		o.dec = newDefaultDecoder()
	}
	return o
}

func status(err error) Status {
	switch {
	case errors.Is(err, ErrInterrupted):
		return Interrupted
	case errors.Is(err, ErrCrop):
		return Param
	case errors.Is(err, ErrUnsupported), isFormatError(err):
		return Format1
	default:
		return InputErr
	}
}

// run opens in, prepares the decoder and hands the image size to body.
func run(in Input, dec BlockDecoder, body func(w, h int) error) (err error) {
	r, closeFn, err := in.Open()
	if err != nil {
		return &Error{Stage: StagePrepare, Status: InputErr, Err: err}
	}
	defer func() {
		if cerr := closeFn(); err == nil && cerr != nil {
			err = &Error{Stage: StageDecompress, Status: InputErr, Err: cerr}
		}
	}()

	w, h, err := dec.Prepare(r)
	if err != nil {
		return &Error{Stage: StagePrepare, Status: status(err), Err: err}
	}
	if err := body(w, h); err != nil {
		var jerr *Error
		if errors.As(err, &jerr) {
			return err
		}
		return &Error{Stage: StageDecompress, Status: status(err), Err: err}
	}
	return nil
}

// Draw decodes in onto dst with the image's top-left corner at (x, y).
// Pixels falling outside dst are skipped.
func Draw(dst *fb.Buffer, in Input, x, y int, opts ...Option) error {
	o := newOptions(opts)
	return run(in, o.dec, func(_, _ int) error {
		return o.dec.Decompress(func(r Rect, px []uint16) error {
			for yy := 0; yy < r.H; yy++ {
				dy := y + r.Y + yy
				if dy < 0 || dy >= dst.Height() {
					continue
				}
				for xx := 0; xx < r.W; xx++ {
					dx := x + r.X + xx
					if dx < 0 || dx >= dst.Width() {
						continue
					}
					dst.SetPixel(dx, dy, fb.Color(px[yy*r.W+xx]), 255)
				}
			}
			return nil
		})
	})
}

// Crop selects part of an image. A W or H of -1 stands for the image
// width or height; the zero Crop selects the whole image.
type Crop struct {
	X, Y, W, H int
}

// Image is a decoded RGB565 image, little-endian, ready for bitmap.Inline.
type Image struct {
	Pixels []byte
	Width  int
	Height int
}

func (c Crop) resolve(w, h int) (Crop, error) {
	if c == (Crop{}) {
		return Crop{W: w, H: h}, nil
	}
	if c.W == -1 {
		c.W = w
	}
	if c.H == -1 {
		c.H = h
	}
	if c.X < 0 || c.Y < 0 || c.W < 0 || c.H < 0 {
		return c, fmt.Errorf("%w: %d,%d %dx%d", ErrCrop, c.X, c.Y, c.W, c.H)
	}
	return c, nil
}

// Decode decodes the crop rectangle of in into a new buffer of exactly
// 2*W*H bytes. Parts of the rectangle outside the image stay zero.
func Decode(in Input, crop Crop, opts ...Option) (*Image, error) {
	o := newOptions(opts)
	var img *Image
	err := run(in, o.dec, func(w, h int) error {
		c, err := crop.resolve(w, h)
		if err != nil {
			return &Error{Stage: StagePrepare, Status: Param, Err: err}
		}
		img = &Image{Pixels: make([]byte, 2*c.W*c.H), Width: c.W, Height: c.H}
		return o.dec.Decompress(func(r Rect, px []uint16) error {
			left, right := max(c.X, r.X), min(c.X+c.W, r.X+r.W)
			top, bottom := max(c.Y, r.Y), min(c.Y+c.H, r.Y+r.H)
			for row := top; row < bottom; row++ {
				for col := left; col < right; col++ {
					off := ((row-c.Y)*c.W + col - c.X) * 2
					binary.LittleEndian.PutUint16(img.Pixels[off:], px[(row-r.Y)*r.W+col-r.X])
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

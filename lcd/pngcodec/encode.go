package pngcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"s3lcd/hal"
	"s3lcd/lcd/fb"

	"github.com/klauspost/compress/zlib"
)

var ErrRegion = errors.New("pngcodec: region outside the buffer")

const (
	signature = "\x89PNG\r\n\x1a\n"
	// idatSize bounds the payload of one IDAT chunk.
	idatSize = 8192
)

// Region is a rectangle of a buffer. The zero Region is the whole buffer.
type Region struct {
	X, Y, W, H int
}

func (r Region) resolve(b *fb.Buffer) (Region, error) {
	if r == (Region{}) {
		r = Region{W: b.Width(), H: b.Height()}
	}
	if r.X < 0 || r.Y < 0 || r.W <= 0 || r.H <= 0 || r.X+r.W > b.Width() || r.Y+r.H > b.Height() {
		return r, fmt.Errorf("%w: %d,%d %dx%d of %dx%d", ErrRegion, r.X, r.Y, r.W, r.H, b.Width(), b.Height())
	}
	return r, nil
}

// Encoder writes 8-bit truecolor PNG images.
type Encoder struct {
	// Level is a zlib compression level; zero means best compression.
	Level int
}

// Encode writes region r of src to w and returns the bytes written.
func (e *Encoder) Encode(w io.Writer, src *fb.Buffer, r Region) (int64, error) {
	r, err := r.resolve(src)
	if err != nil {
		return 0, err
	}
	cw := &chunkWriter{w: w}
	if _, err := io.WriteString(cw, signature); err != nil {
		return cw.n, err
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:], uint32(r.W))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(r.H))
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor
	if err := cw.chunk("IHDR", ihdr[:]); err != nil {
		return cw.n, err
	}

	level := e.Level
	if level == 0 {
		level = zlib.BestCompression
	}
	idat := &idatWriter{cw: cw, buf: make([]byte, 0, idatSize)}
	zw, err := zlib.NewWriterLevel(idat, level)
	if err != nil {
		return cw.n, err
	}
	line := make([]byte, 1+3*r.W)
	for row := r.Y; row < r.Y+r.H; row++ {
		line[0] = 0 // filter: none
		for col := 0; col < r.W; col++ {
			rr, gg, bb := src.Pixel(r.X+col, row).RGB888()
			line[1+col*3], line[2+col*3], line[3+col*3] = rr, gg, bb
		}
		if _, err := zw.Write(line); err != nil {
			return cw.n, err
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	if err := idat.flush(); err != nil {
		return cw.n, err
	}
	if err := cw.chunk("IEND", nil); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Write saves region r of src as a PNG file called name and returns the
// file size.
func Write(src *fb.Buffer, store hal.Storage, name string, r Region) (n int64, err error) {
	if _, err := r.resolve(src); err != nil {
		return 0, err
	}
	f, err := store.Open(name, hal.ModeCreate)
	if err != nil {
		return 0, fmt.Errorf("pngcodec: create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("pngcodec: close %s: %w", name, cerr)
		}
	}()
	var e Encoder
	n, err = e.Encode(f, src, r)
	if err != nil {
		return n, fmt.Errorf("pngcodec: write %s: %w", name, err)
	}
	return n, nil
}

type chunkWriter struct {
	w io.Writer
	n int64
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (c *chunkWriter) chunk(name string, data []byte) error {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], name)
	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	for _, b := range [][]byte{hdr[:], data, sum[:]} {
		if _, err := c.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// idatWriter collects compressed bytes into IDAT chunks of idatSize.
type idatWriter struct {
	cw  *chunkWriter
	buf []byte
}

func (w *idatWriter) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		k := copy(w.buf[len(w.buf):cap(w.buf)], p)
		w.buf = w.buf[:len(w.buf)+k]
		p = p[k:]
		if len(w.buf) == cap(w.buf) {
			if err := w.flush(); err != nil {
				return 0, err
			}
		}
	}
	return n, nil
}

func (w *idatWriter) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	err := w.cw.chunk("IDAT", w.buf)
	w.buf = w.buf[:0]
	return err
}

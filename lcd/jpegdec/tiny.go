package jpegdec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"sync"

	tinyjpeg "tinygo.org/x/drivers/image/jpeg"
)

// tinyMu guards the package-level callback of the tinygo decoder.
var tinyMu sync.Mutex

// TinyDecoder streams 16x16 blocks from tinygo.org/x/drivers/image/jpeg
// without holding the image. It handles baseline YCbCr 4:2:0 images only.
type TinyDecoder struct {
	r    io.Reader
	w, h int
	buf  [blockSize * blockSize]uint16
	tile [blockSize * blockSize]uint16
}

func (d *TinyDecoder) Prepare(r io.Reader) (int, int, error) {
	var head bytes.Buffer
	cfg, err := tinyjpeg.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return 0, 0, err
	}
	if cfg.ColorModel == color.GrayModel {
		return 0, 0, fmt.Errorf("%w: grayscale", ErrUnsupported)
	}
	if progressive(head.Bytes()) {
		return 0, 0, fmt.Errorf("%w: progressive", ErrUnsupported)
	}
	d.r = io.MultiReader(&head, r)
	d.w, d.h = cfg.Width, cfg.Height
	return d.w, d.h, nil
}

// progressive walks the marker segments in head looking for SOF2.
func progressive(head []byte) bool {
	for pos := 2; pos+4 <= len(head); {
		if head[pos] != 0xFF {
			return false
		}
		switch m := head[pos+1]; m {
		case 0xFF:
			pos++
			continue
		case 0xC2:
			return true
		case 0xDA, 0xD9:
			return false
		}
		pos += 2 + int(binary.BigEndian.Uint16(head[pos+2:]))
	}
	return false
}

// abortReader fails reads once the consumer has returned an error, which
// makes the decoder unwind.
type abortReader struct {
	r   io.Reader
	err *error
}

func (a abortReader) Read(p []byte) (int, error) {
	if *a.err != nil {
		return 0, *a.err
	}
	return a.r.Read(p)
}

func (d *TinyDecoder) Decompress(out func(Rect, []uint16) error) error {
	if d.r == nil {
		return fmt.Errorf("%w: decompress before prepare", ErrUnsupported)
	}
	tinyMu.Lock()
	defer tinyMu.Unlock()

	var outErr error
	tinyjpeg.SetCallback(d.buf[:], func(data []uint16, x, y, w, h, _, _ int16) {
		if outErr != nil {
			return
		}
		r := Rect{X: int(x), Y: int(y), W: min(int(w), d.w-int(x)), H: min(int(h), d.h-int(y))}
		if r.W <= 0 || r.H <= 0 {
			return
		}
		px := data[:r.W*r.H]
		if r.W != int(w) {
			for yy := 0; yy < r.H; yy++ {
				copy(d.tile[yy*r.W:(yy+1)*r.W], data[yy*int(w):])
			}
			px = d.tile[:r.W*r.H]
		}
		if err := out(r, px); err != nil {
			outErr = fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
	})
	defer tinyjpeg.SetCallback(nil, func([]uint16, int16, int16, int16, int16, int16, int16) {})

	_, err := tinyjpeg.Decode(abortReader{r: d.r, err: &outErr})
	if outErr != nil {
		return outErr
	}
	return err
}

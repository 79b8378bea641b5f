package jpegdec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"s3lcd/lcd/fb"

	tinyjpeg "tinygo.org/x/drivers/image/jpeg"
)

const blockSize = 16

func isFormatError(err error) bool {
	var (
		f1 jpeg.FormatError
		u1 jpeg.UnsupportedError
		f2 tinyjpeg.FormatError
		u2 tinyjpeg.UnsupportedError
	)
	return errors.As(err, &f1) || errors.As(err, &u1) || errors.As(err, &f2) || errors.As(err, &u2)
}

// StdDecoder decodes with image/jpeg and re-tiles the result into 16x16
// blocks. It holds the whole image between Prepare and Decompress.
type StdDecoder struct {
	img image.Image
}

func (d *StdDecoder) Prepare(r io.Reader) (int, int, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return 0, 0, err
	}
	d.img = img
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (d *StdDecoder) Decompress(out func(Rect, []uint16) error) error {
	if d.img == nil {
		return fmt.Errorf("%w: decompress before prepare", ErrUnsupported)
	}
	b := d.img.Bounds()
	var tile [blockSize * blockSize]uint16
	for ty := 0; ty < b.Dy(); ty += blockSize {
		for tx := 0; tx < b.Dx(); tx += blockSize {
			r := Rect{X: tx, Y: ty, W: min(blockSize, b.Dx()-tx), H: min(blockSize, b.Dy()-ty)}
			for yy := 0; yy < r.H; yy++ {
				for xx := 0; xx < r.W; xx++ {
					tile[yy*r.W+xx] = rgb565(d.img, b.Min.X+tx+xx, b.Min.Y+ty+yy)
				}
			}
			if err := out(r, tile[:r.W*r.H]); err != nil {
				return fmt.Errorf("%w: %w", ErrInterrupted, err)
			}
		}
	}
	return nil
}

func rgb565(img image.Image, x, y int) uint16 {
	switch m := img.(type) {
	case *image.YCbCr:
		c := m.YCbCrAt(x, y)
		r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
		return uint16(fb.RGB565(r, g, b))
	case *image.Gray:
		v := m.GrayAt(x, y).Y
		return uint16(fb.RGB565(v, v, v))
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return uint16(fb.RGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}

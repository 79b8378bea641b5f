package pngcodec

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"sync"

	"s3lcd/lcd/fb"

	tinypng "tinygo.org/x/drivers/image/png"
)

// tinyMu guards the package-level callback of the tinygo decoder.
var tinyMu sync.Mutex

// ihdrInterlace is the offset of the interlace byte from the start of
// the file.
const ihdrInterlace = 8 + 8 + 12

// TinyDecoder decodes row by row with tinygo.org/x/drivers/image/png.
// Only non-interlaced 8-bit truecolor images are supported; every tile
// is opaque.
type TinyDecoder struct{}

func (TinyDecoder) Decode(r io.Reader, draw func(Tile)) error {
	var head bytes.Buffer
	cfg, err := tinypng.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return err
	}
	if cfg.ColorModel != color.RGBAModel {
		return fmt.Errorf("%w: not 8-bit truecolor", ErrUnsupported)
	}
	if h := head.Bytes(); len(h) > ihdrInterlace && h[ihdrInterlace] != 0 {
		return fmt.Errorf("%w: interlaced", ErrUnsupported)
	}

	tinyMu.Lock()
	defer tinyMu.Unlock()

	buf := make([]uint16, cfg.Width)
	tinypng.SetCallback(buf, func(data []uint16, x, y, w, _, _, _ int16) {
		row := data[:w]
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i] == row[start] {
				continue
			}
			c := fb.Color(row[start]).RGBA()
			draw(Tile{X: int(x) + start, Y: int(y), W: i - start, H: 1, RGBA: [4]uint8{c.R, c.G, c.B, 0xFF}})
			start = i
		}
	})
	defer tinypng.SetCallback(nil, func([]uint16, int16, int16, int16, int16, int16, int16) {})

	_, err = tinypng.Decode(io.MultiReader(&head, r))
	return err
}

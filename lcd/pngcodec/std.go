package pngcodec

import (
	"image/color"
	"image/png"
	"io"
)

// StdDecoder decodes with image/png. It handles every PNG color type and
// emits one tile per horizontal run of identical pixels.
type StdDecoder struct{}

func (StdDecoder) Decode(r io.Reader, draw func(Tile)) error {
	img, err := png.Decode(r)
	if err != nil {
		return err
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		run := Tile{X: 0, Y: y - b.Min.Y, H: 1}
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgba := [4]uint8{c.R, c.G, c.B, c.A}
			if run.W > 0 && rgba == run.RGBA {
				run.W++
				continue
			}
			if run.W > 0 {
				draw(run)
			}
			run.X, run.W, run.RGBA = x-b.Min.X, 1, rgba
		}
		if run.W > 0 {
			draw(run)
		}
	}
	return nil
}

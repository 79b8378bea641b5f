// Package app is the demo scene shown by the host simulator, the CLI and
// the board firmware. Each step renders one animation frame with every
// drawing primitive and flushes it.
package app

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"

	"s3lcd/hal"
	"s3lcd/internal/buildinfo"
	"s3lcd/lcd/asset"
	"s3lcd/lcd/bitmap"
	"s3lcd/lcd/display"
	"s3lcd/lcd/fb"
	"s3lcd/lcd/jpegdec"
	"s3lcd/lcd/pngcodec"
	"s3lcd/lcd/raster"
	"s3lcd/lcd/text"
	"s3lcd/lcd/text/bitfont"
	"s3lcd/lcd/text/hershey"
	"s3lcd/lcd/text/mono"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	spriteName = "sprite"
	thumbName  = "thumb.png"
	thumbSize  = 48
	// thumbEvery is how often, in frames, the thumbnail is re-encoded.
	thumbEvery = 60
)

var (
	background = fb.RGB565(0x10, 0x18, 0x40)
	navy       = fb.RGB565(0x00, 0x00, 0x60)
	orange     = fb.RGB565(0xFF, 0x80, 0x00)
)

// Scene renders the demo onto a display.
type Scene struct {
	d     *display.Display
	store hal.Storage

	fixed  *mono.Font
	prop   *bitfont.Font
	assets asset.Map
	photo  []byte
	star   []raster.Point
	frame  int
	thumb  bool
}

// NewScene prepares fonts and images for d. PNG thumbnails are written to
// store; a nil store keeps them in memory.
func NewScene(d *display.Display, store hal.Storage) (*Scene, error) {
	if store == nil {
		store = hal.NewMemStorage()
	}
	sprite, err := spriteSheet().MarshalBinary()
	if err != nil {
		return nil, err
	}
	photo, err := gradientJPEG(64, 48)
	if err != nil {
		return nil, err
	}
	return &Scene{
		d:      d,
		store:  store,
		fixed:  mono.FromFace("fixed7x13", basicfont.Face7x13),
		prop:   bitfont.FromFace("prop7x13", basicfont.Face7x13),
		assets: asset.Map{spriteName: sprite},
		photo:  photo,
		star:   starPoints(5, 28, 12),
	}, nil
}

// Frame returns the number of frames rendered so far.
func (s *Scene) Frame() int { return s.frame }

// Render draws the next frame into the framebuffer without flushing.
func (s *Scene) Render() error {
	d := s.d
	w, h := d.Width(), d.Height()
	if w == 0 || h == 0 {
		return display.ErrClosed
	}
	n := s.frame
	s.frame++

	d.Fill(background)
	d.FillRect(0, 0, w, 17, navy, 255)
	if _, err := d.Text(s.fixed, text.String("s3lcd "+buildinfo.Short()), 4, 2, fb.White.Ink(), fb.Transparent, 255); err != nil {
		return err
	}

	// Overlapping translucent shapes.
	d.FillRect(8, 24, w/3, h/5, fb.Red, 255)
	d.FillCircle(8+w/3, 24+h/5, h/8, fb.Blue, 160)
	d.Rect(6, 22, w/3+4, h/5+4, fb.White, 255)
	d.Circle(w-40, 60, 30, fb.Yellow, 255)
	for i := 0; i < 12; i++ {
		a := float64(i)*math.Pi/6 + float64(n)*0.02
		d.Line(w-40, 60, w-40+int(26*math.Cos(a)), 60+int(26*math.Sin(a)), fb.Cyan, 200)
	}

	// Spinning star.
	cx, cy := w/2, h/2
	angle := float64(n) * 0.05
	if err := d.FillPolygon(s.star, cx, cy, orange, 255, angle, raster.Point{}); err != nil {
		return err
	}
	if err := d.Polygon(s.star, cx, cy, fb.White, 255, angle, raster.Point{}); err != nil {
		return err
	}

	// Text engines.
	y := h/2 + 40
	if _, err := d.Draw(hershey.Segment, text.String(fmt.Sprintf("%05d", n)), 12, y, fb.Green, 1.5, 255); err != nil {
		return err
	}
	if _, err := d.Write(s.prop, text.String("Proportional text"), 8, y+20, fb.White.Ink(), navy.Ink(), 255); err != nil {
		return err
	}
	d.WriteLine(&proggy.TinySZ8pt7b, 8, int16(y+48), "tinyfont proggy", fb.Magenta)

	// Images.
	if err := d.Bitmap(bitmap.Named(s.assets, spriteName), w-24, h/2+40, bitmap.Options{Index: n / 8 % 2, Alpha: 255}); err != nil {
		return err
	}
	if err := d.JPG(jpegdec.FromBytes(s.photo), 8, h-56); err != nil {
		return err
	}
	if s.thumb {
		if err := d.PNG(pngcodec.FromFile(s.store, thumbName), w-thumbSize-8, h-thumbSize-8); err != nil {
			return err
		}
	}
	if n%thumbEvery == 0 {
		r := pngcodec.Region{X: cx - thumbSize/2, Y: cy - thumbSize/2, W: thumbSize, H: thumbSize}
		if _, err := d.PNGWrite(s.store, thumbName, r); err != nil && !errors.Is(err, pngcodec.ErrRegion) {
			return err
		} else if err == nil {
			s.thumb = true
		}
	}
	return nil
}

// Step renders a frame and shows it.
func (s *Scene) Step() error {
	if err := s.Render(); err != nil {
		return err
	}
	return s.d.Show()
}

// starPoints returns a star outline centered on the origin.
func starPoints(tips, outer, inner int) []raster.Point {
	pts := make([]raster.Point, 0, tips*2)
	for i := 0; i < tips*2; i++ {
		r := float64(outer)
		if i%2 == 1 {
			r = float64(inner)
		}
		a := float64(i)*math.Pi/float64(tips) - math.Pi/2
		pts = append(pts, raster.Point{X: math.Round(r * math.Cos(a)), Y: math.Round(r * math.Sin(a))})
	}
	return pts
}

// spriteSheet is two 16x16 frames at 2 bpp: a ring and a disc.
func spriteSheet() *bitmap.Palette {
	const size = 16
	p := &bitmap.Palette{
		Width:   size,
		Height:  size,
		BPP:     2,
		Palette: []fb.Color{background, fb.White, fb.Yellow, fb.Red},
		Frames:  2,
		Bitmap:  make([]byte, 2*size*size*2/8),
	}
	bit := 0
	put := func(v int) {
		for i := 1; i >= 0; i-- {
			if v>>i&1 != 0 {
				p.Bitmap[bit/8] |= 0x80 >> (bit % 8)
			}
			bit++
		}
	}
	for frame := 0; frame < 2; frame++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx, dy := x*2-size+1, y*2-size+1
				d := dx*dx + dy*dy
				v := 0
				switch {
				case d < 100 && frame == 1:
					v = 3
				case d < 144 && d >= 100:
					v = 2
				case d < 225 && d >= 144:
					v = 1
				}
				put(v)
			}
		}
	}
	return p
}

func gradientJPEG(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 0x80, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package display

import (
	"s3lcd/hal"
	"s3lcd/lcd/bitmap"
	"s3lcd/lcd/fb"
	"s3lcd/lcd/jpegdec"
	"s3lcd/lcd/pngcodec"
	"s3lcd/lcd/raster"
	"s3lcd/lcd/text"
	"s3lcd/lcd/text/bitfont"
	"s3lcd/lcd/text/hershey"
	"s3lcd/lcd/text/mono"

	"tinygo.org/x/tinyfont"
)

// The drawing methods below render into the framebuffer only. Call Show to
// put the result on the panel. After Deinit they do nothing and the
// error-returning ones return ErrClosed.

func (d *Display) Pixel(x, y int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		d.buf.SetPixel(x, y, c, alpha)
	}
}

func (d *Display) Line(x0, y0, x1, y1 int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		raster.Line(d.buf, x0, y0, x1, y1, c, alpha)
	}
}

func (d *Display) HLine(x, y, w int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		d.buf.HLine(x, y, w, c, alpha)
	}
}

func (d *Display) VLine(x, y, h int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		d.buf.VLine(x, y, h, c, alpha)
	}
}

func (d *Display) Rect(x, y, w, h int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		raster.Rect(d.buf, x, y, w, h, c, alpha)
	}
}

func (d *Display) FillRect(x, y, w, h int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		d.buf.FillRect(x, y, w, h, c, alpha)
	}
}

func (d *Display) Circle(x, y, r int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		raster.Circle(d.buf, x, y, r, c, alpha)
	}
}

func (d *Display) FillCircle(x, y, r int, c fb.Color, alpha uint8) {
	if d.buf != nil {
		raster.FillCircle(d.buf, x, y, r, c, alpha)
	}
}

// Polygon outlines pts offset by (x, y), rotated by angle radians about
// center.
func (d *Display) Polygon(pts []raster.Point, x, y int, c fb.Color, alpha uint8, angle float64, center raster.Point) error {
	if d.buf == nil {
		return ErrClosed
	}
	return raster.Polygon(d.buf, pts, x, y, c, alpha, angle, center)
}

func (d *Display) FillPolygon(pts []raster.Point, x, y int, c fb.Color, alpha uint8, angle float64, center raster.Point) error {
	if d.buf == nil {
		return ErrClosed
	}
	return raster.FillPolygon(d.buf, pts, x, y, c, alpha, angle, center)
}

// PolygonCenter returns the centroid of pts.
func (d *Display) PolygonCenter(pts []raster.Point) (int, int, error) {
	return raster.Centroid(pts)
}

func (d *Display) Fill(c fb.Color) {
	if d.buf != nil {
		d.buf.Fill(c)
	}
}

// Clear sets every byte of the framebuffer to v.
func (d *Display) Clear(v uint8) {
	if d.buf != nil {
		d.buf.Clear(v)
	}
}

func (d *Display) Scroll(dx, dy int, fill fb.Color) {
	if d.buf != nil {
		d.buf.Scroll(dx, dy, fill)
	}
}

// BlitBuffer copies w x h little-endian RGB565 pixels to (x, y).
func (d *Display) BlitBuffer(src []byte, x, y, w, h int, alpha uint8) error {
	if d.buf == nil {
		return ErrClosed
	}
	return d.buf.Blit(src, x, y, w, h, alpha)
}

func (d *Display) Bitmap(src bitmap.Source, x, y int, opts bitmap.Options) error {
	if d.buf == nil {
		return ErrClosed
	}
	return bitmap.Draw(d.buf, src, x, y, opts)
}

// Text draws with a fixed-cell font and returns the advance.
func (d *Display) Text(f *mono.Font, src text.Source, x, y int, fg, bg fb.Ink, alpha uint8) (int, error) {
	if d.buf == nil {
		return 0, ErrClosed
	}
	return mono.Write(d.buf, f, src, x, y, fg, bg, alpha)
}

// Write draws with a proportional bitmap font and returns the advance.
func (d *Display) Write(f *bitfont.Font, src text.Source, x, y int, fg, bg fb.Ink, alpha uint8) (int, error) {
	if d.buf == nil {
		return 0, ErrClosed
	}
	return bitfont.Write(d.buf, f, src, x, y, fg, bg, alpha)
}

func (d *Display) WriteLen(f *bitfont.Font, src text.Source) int {
	return bitfont.Measure(f, src)
}

// Draw strokes src with a vector font and returns the advance.
func (d *Display) Draw(f *hershey.Font, src text.Source, x, y int, c fb.Color, scale float64, alpha uint8) (int, error) {
	if d.buf == nil {
		return 0, ErrClosed
	}
	return hershey.Draw(d.buf, f, src, x, y, c, scale, alpha)
}

func (d *Display) DrawLen(f *hershey.Font, src text.Source, scale float64) int {
	return hershey.Measure(f, src, scale)
}

// WriteLine draws s through tinyfont with its baseline at y.
func (d *Display) WriteLine(f tinyfont.Fonter, x, y int16, s string, c fb.Color) {
	if d.buf != nil {
		tinyfont.WriteLine(d.buf.Displayer(nil), f, x, y, s, c.RGBA())
	}
}

// JPG decodes in onto the framebuffer with its top-left corner at (x, y).
func (d *Display) JPG(in jpegdec.Input, x, y int, opts ...jpegdec.Option) error {
	if d.buf == nil {
		return ErrClosed
	}
	return jpegdec.Draw(d.buf, in, x, y, opts...)
}

// JPGDecode decodes the crop of in into a standalone pixel buffer.
func (d *Display) JPGDecode(in jpegdec.Input, crop jpegdec.Crop, opts ...jpegdec.Option) (*jpegdec.Image, error) {
	return jpegdec.Decode(in, crop, opts...)
}

// PNG decodes in onto the framebuffer, feeding the decoder through the
// staging buffer unless opts supply another.
func (d *Display) PNG(in pngcodec.Input, x, y int, opts ...pngcodec.Option) error {
	if d.buf == nil {
		return ErrClosed
	}
	stage, err := d.staging()
	if err != nil {
		return err
	}
	opts = append([]pngcodec.Option{pngcodec.WithBuffer(stage)}, opts...)
	return pngcodec.Draw(d.buf, in, x, y, opts...)
}

// PNGWrite encodes region r of the framebuffer to name and returns the
// bytes written.
func (d *Display) PNGWrite(store hal.Storage, name string, r pngcodec.Region) (int64, error) {
	if d.buf == nil {
		return 0, ErrClosed
	}
	return pngcodec.Write(d.buf, store, name, r)
}

// MapBitarray expands a packed 1-bpp row into dst. See bitmap.MapBits.
func (d *Display) MapBitarray(bits []byte, dst []fb.Color, width int, fg, bg fb.Color) int {
	return bitmap.MapBits(bits, dst, width, fg, bg)
}

// Color565 packs an 8-bit per channel color.
func Color565(r, g, b uint8) fb.Color { return fb.RGB565(r, g, b) }

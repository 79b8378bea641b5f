package pngcodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"s3lcd/hal"
	"s3lcd/lcd/fb"
)

func pattern(w, h int) *fb.Buffer {
	b := fb.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.SetPixel(x, y, fb.Color(uint16(x*2029+y*7919+x*y*31)), 255)
		}
	}
	b.FillRect(0, 0, w/2, 1, fb.Cyan, 255)
	return b
}

func equalPix(t *testing.T, got, want *fb.Buffer) {
	t.Helper()
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			if g, w := got.Pixel(x, y), want.Pixel(x, y); g != w {
				t.Fatalf("(%d,%d)=%#04x, want %#04x", x, y, g, w)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for name, dec := range map[string]Decoder{"std": StdDecoder{}, "tiny": TinyDecoder{}} {
		src := pattern(23, 17)
		store := hal.NewMemStorage()
		n, err := Write(src, store, "shot.png", Region{})
		if err != nil {
			t.Fatalf("%s: Write: %v", name, err)
		}
		data, _ := store.Get("shot.png")
		if n != int64(len(data)) {
			t.Fatalf("%s: reported %d bytes, file has %d", name, n, len(data))
		}

		got := fb.New(23, 17)
		if err := Draw(got, FromFile(store, "shot.png"), 0, 0, WithDecoder(dec)); err != nil {
			t.Fatalf("%s: Draw: %v", name, err)
		}
		equalPix(t, got, src)
		if store.OpenHandles() != 0 {
			t.Fatalf("%s: handles left open", name)
		}
	}
}

func TestEncode_IsStandardPNG(t *testing.T) {
	src := pattern(9, 4)
	var buf bytes.Buffer
	var e Encoder
	if _, err := e.Encode(&buf, src, Region{X: 2, Y: 1, W: 5, H: 3}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if got := fb.RGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8)); got != src.Pixel(2, 1) {
		t.Fatalf("pixel %#04x, want %#04x", got, src.Pixel(2, 1))
	}
}

func TestWrite_Region(t *testing.T) {
	src := fb.New(10, 8)
	bad := []Region{
		{X: -1, W: 2, H: 2},
		{X: 9, W: 2, H: 2},
		{Y: 7, W: 1, H: 2},
		{X: 1, W: 0, H: 3},
	}
	for _, r := range bad {
		store := hal.NewMemStorage()
		if _, err := Write(src, store, "x.png", r); !errors.Is(err, ErrRegion) {
			t.Errorf("%+v: err=%v", r, err)
		}
		if _, ok := store.Get("x.png"); ok {
			t.Errorf("%+v: file created", r)
		}
	}
	if _, err := Write(src, hal.NewMemStorage(), "x.png", Region{X: 8, Y: 6, W: 2, H: 2}); err != nil {
		t.Fatalf("corner region: %v", err)
	}
}

func TestDraw_TileSkipAndAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for i := 0; i < 8; i++ {
		img.SetNRGBA(i%4, i/4, color.NRGBA{R: 0xFF, A: 0xFF})
	}
	img.SetNRGBA(3, 1, color.NRGBA{G: 0xFF, A: 0})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}

	dst := fb.New(6, 6)
	dst.Fill(fb.Blue)
	if err := Draw(dst, FromBytes(buf.Bytes()), 3, 4); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if dst.Pixel(3, 4) != fb.Red || dst.Pixel(5, 5) != fb.Red {
		t.Fatalf("red run %#04x %#04x", dst.Pixel(3, 4), dst.Pixel(5, 5))
	}
	if dst.Pixel(2, 4) != fb.Blue {
		t.Fatalf("drew left of the image")
	}

	var tiles []Tile
	if err := (StdDecoder{}).Decode(bytes.NewReader(buf.Bytes()), func(t Tile) { tiles = append(tiles, t) }); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tiles) != 3 || tiles[0].W != 4 || tiles[1].W != 3 || tiles[2].X != 3 || tiles[2].RGBA[3] != 0 {
		t.Fatalf("tiles %+v", tiles)
	}

	dst.Fill(fb.Blue)
	if err := Draw(dst, FromBytes(buf.Bytes()), 0, 0); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if dst.Pixel(3, 1) != fb.Blue {
		t.Fatalf("transparent pixel written: %#04x", dst.Pixel(3, 1))
	}
}

func TestDraw_Errors(t *testing.T) {
	err := Draw(fb.New(2, 2), FromBytes([]byte("nope")), 0, 0)
	if err == nil || !strings.HasPrefix(err.Error(), "png decompress failed: ") {
		t.Fatalf("err=%v", err)
	}
	store := hal.NewMemStorage()
	if err := Draw(fb.New(2, 2), FromFile(store, "missing.png"), 0, 0); !errors.Is(err, hal.ErrNotFound) {
		t.Fatalf("missing err=%v", err)
	}

	img := image.NewGray(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	if err := Draw(fb.New(2, 2), FromBytes(buf.Bytes()), 0, 0, WithDecoder(TinyDecoder{})); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("gray via tiny err=%v", err)
	}
}

type oneByteReader struct{ r io.Reader }

func (o oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return o.r.Read(p)
}

func TestFeeder(t *testing.T) {
	data := []byte("abcdefghij")
	f := NewFeeder(bytes.NewReader(data), make([]byte, 4))
	got, err := io.ReadAll(f)
	if err != nil || string(got) != string(data) {
		t.Fatalf("ReadAll = %q, %v", got, err)
	}
	if f.Blocks() != 3 {
		t.Fatalf("blocks=%d, want 3", f.Blocks())
	}

	f = NewFeeder(oneByteReader{bytes.NewReader(data)}, make([]byte, 4))
	p := make([]byte, 3)
	n, _ := f.Read(p)
	if n != 1 || p[0] != 'a' {
		t.Fatalf("short read n=%d", n)
	}

	src := pattern(8, 8)
	var buf bytes.Buffer
	if _, err := (&Encoder{}).Encode(&buf, src, Region{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got2 := fb.New(8, 8)
	if err := Draw(got2, FromBytes(buf.Bytes()), 0, 0, WithBuffer(make([]byte, 7))); err != nil {
		t.Fatalf("Draw with small buffer: %v", err)
	}
	equalPix(t, got2, src)
}

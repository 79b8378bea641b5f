package mono

import (
	"errors"
	"image/color"
	"testing"

	"s3lcd/lcd/fb"
	"s3lcd/lcd/text"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/tinyfont"
)

// Two 8x2 glyphs: 'a' is a left bar, 'b' a top bar.
func tiny() *Font {
	return &Font{
		Width: 8, Height: 2, First: 'a', Last: 'b',
		Data: []byte{
			0x80, 0x80,
			0xFF, 0x00,
		},
	}
}

func TestWrite_Cells(t *testing.T) {
	b := fb.New(20, 3)
	w, err := Write(b, tiny(), text.String("ab"), 1, 1, fb.White.Ink(), fb.Blue.Ink(), 255)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if w != 16 {
		t.Fatalf("advance=%d, want 16", w)
	}
	cases := []struct {
		x, y int
		want fb.Color
	}{
		{1, 1, fb.White}, {1, 2, fb.White}, {2, 1, fb.Blue}, {8, 2, fb.Blue},
		{9, 1, fb.White}, {16, 1, fb.White}, {9, 2, fb.Blue},
		{0, 1, fb.Black}, {17, 1, fb.Black}, {1, 0, fb.Black},
	}
	for _, c := range cases {
		if got := b.Pixel(c.x, c.y); got != c.want {
			t.Errorf("(%d,%d)=%#04x, want %#04x", c.x, c.y, got, c.want)
		}
	}
}

func TestWrite_SkipsOutOfRangeWithoutAdvance(t *testing.T) {
	a := fb.New(20, 2)
	c := fb.New(20, 2)
	wa, _ := Write(a, tiny(), text.Raw([]byte("a\x01zb")), 0, 0, fb.White.Ink(), fb.Transparent, 255)
	wc, _ := Write(c, tiny(), text.String("ab"), 0, 0, fb.White.Ink(), fb.Transparent, 255)
	if wa != wc || wa != 16 {
		t.Fatalf("advance %d / %d", wa, wc)
	}
	for i := range a.Pix() {
		if a.Pix()[i] != c.Pix()[i] {
			t.Fatalf("pix[%d] differs", i)
		}
	}
}

func TestWrite_TransparentInk(t *testing.T) {
	b := fb.New(8, 2)
	b.Fill(fb.Red)
	if _, err := Write(b, tiny(), text.Rune('a'), 0, 0, fb.Transparent, fb.Transparent, 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	for i, v := range b.Pix() {
		if fb.Color(v) != fb.Red {
			t.Fatalf("pix[%d] changed", i)
		}
	}
	if _, err := Write(b, tiny(), text.Rune('a'), 0, 0, fb.Transparent, fb.Green.Ink(), 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if b.Pixel(0, 0) != fb.Red || b.Pixel(1, 0) != fb.Green {
		t.Fatalf("got %#04x %#04x", b.Pixel(0, 0), b.Pixel(1, 0))
	}
}

func TestWrite_Malformed(t *testing.T) {
	tests := map[string]func(f *Font){
		"short data": func(f *Font) { f.Data = f.Data[:3] },
		"width":      func(f *Font) { f.Width = 6 },
		"range":      func(f *Font) { f.First, f.Last = 'b', 'a' },
		"height":     func(f *Font) { f.Height = 0 },
	}
	for name, mutate := range tests {
		f := tiny()
		mutate(f)
		b := fb.New(16, 2)
		if _, err := Write(b, f, text.String("ab"), 0, 0, fb.White.Ink(), fb.Blue.Ink(), 255); !errors.Is(err, ErrMalformedFont) {
			t.Errorf("%s: err=%v", name, err)
		}
		for i, v := range b.Pix() {
			if v != 0 {
				t.Fatalf("%s: pix[%d] written", name, i)
			}
		}
	}
}

func TestMeasure(t *testing.T) {
	if got := Measure(tiny(), text.String("abcab")); got != 32 {
		t.Fatalf("Measure=%d", got)
	}
}

func TestFromFace(t *testing.T) {
	f := FromFace("fixed7x13", basicfont.Face7x13)
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f.Width != 8 || f.Height != 13 {
		t.Fatalf("cell %dx%d", f.Width, f.Height)
	}
	b := fb.New(8, 13)
	if _, err := Write(b, f, text.Rune(' '), 0, 0, fb.White.Ink(), fb.Transparent, 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	for _, v := range b.Pix() {
		if v != 0 {
			t.Fatalf("space is inked")
		}
	}
	if _, err := Write(b, f, text.Rune('#'), 0, 0, fb.White.Ink(), fb.Transparent, 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	inked := 0
	for _, v := range b.Pix() {
		if v != 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Fatalf("'#' not inked")
	}
}

func TestFonter(t *testing.T) {
	f := tiny()
	want := fb.New(20, 4)
	if _, err := Write(want, f, text.String("ab"), 2, 1, fb.White.Ink(), fb.Transparent, 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := fb.New(20, 4)
	tinyfont.WriteLine(got.Displayer(nil), f.Fonter(), 2, 2, "ab", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	for i := range want.Pix() {
		if got.Pix()[i] != want.Pix()[i] {
			t.Fatalf("pix[%d]=%#04x, want %#04x", i, got.Pix()[i], want.Pix()[i])
		}
	}
	if _, w := tinyfont.LineWidth(f.Fonter(), "ab"); w != 16 {
		t.Fatalf("LineWidth=%d", w)
	}
}

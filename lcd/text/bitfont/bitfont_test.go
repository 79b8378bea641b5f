package bitfont

import (
	"errors"
	"image/color"
	"testing"

	"s3lcd/lcd/fb"
	"s3lcd/lcd/text"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/tinyfont"
)

// "A" is 3x2: 101 / 010. "B" is 2x2: 11 / 01.
func twoGlyphs() *Font {
	return &Font{
		BPP:         1,
		Height:      2,
		OffsetWidth: 1,
		Widths:      []byte{3, 2},
		Offsets:     []byte{0, 6},
		Bitmaps:     []byte{0b10101011, 0b01000000},
		Map:         "AB",
	}
}

func expect(t *testing.T, b *fb.Buffer, want map[[2]int]fb.Color) {
	t.Helper()
	for p, c := range want {
		if got := b.Pixel(p[0], p[1]); got != c {
			t.Errorf("(%d,%d)=%#04x, want %#04x", p[0], p[1], got, c)
		}
	}
}

func TestWrite_OneBPP(t *testing.T) {
	b := fb.New(8, 4)
	w, err := Write(b, twoGlyphs(), text.String("AB"), 1, 1, fb.White.Ink(), fb.Blue.Ink(), 255)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if w != 5 {
		t.Fatalf("advance=%d, want 5", w)
	}
	W, B := fb.White, fb.Blue
	expect(t, b, map[[2]int]fb.Color{
		{1, 1}: W, {2, 1}: B, {3, 1}: W,
		{1, 2}: B, {2, 2}: W, {3, 2}: B,
		{4, 1}: W, {5, 1}: W,
		{4, 2}: B, {5, 2}: W,
		{0, 1}: fb.Black, {6, 1}: fb.Black, {1, 0}: fb.Black,
	})
}

func TestWrite_TransparentBackground(t *testing.T) {
	b := fb.New(4, 3)
	b.Fill(fb.Red)
	if _, err := Write(b, twoGlyphs(), text.Rune('A'), 0, 0, fb.Green.Ink(), fb.Transparent, 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	expect(t, b, map[[2]int]fb.Color{
		{0, 0}: fb.Green, {1, 0}: fb.Red, {2, 0}: fb.Green,
		{0, 1}: fb.Red, {1, 1}: fb.Green,
	})

	b.Fill(fb.Red)
	if _, err := Write(b, twoGlyphs(), text.Rune('A'), 0, 0, fb.Transparent, fb.Blue.Ink(), 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	expect(t, b, map[[2]int]fb.Color{{0, 0}: fb.Red, {1, 0}: fb.Blue})
}

func TestWrite_TwoBPP(t *testing.T) {
	f := &Font{
		BPP: 2, Height: 1, OffsetWidth: 1,
		Widths: []byte{3}, Offsets: []byte{0},
		Bitmaps: []byte{0b00011100},
		Map:     "x",
	}
	b := fb.New(3, 1)
	if _, err := Write(b, f, text.String("x"), 0, 0, fb.White.Ink(), fb.Yellow.Ink(), 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	expect(t, b, map[[2]int]fb.Color{{0, 0}: fb.Yellow, {1, 0}: fb.White, {2, 0}: fb.White})
}

func TestWrite_SkipsUnmappedAndMasksCodePoints(t *testing.T) {
	a := fb.New(10, 3)
	c := fb.New(10, 3)
	wa, _ := Write(a, twoGlyphs(), text.String("A?B"), 0, 0, fb.White.Ink(), fb.Transparent, 255)
	wc, _ := Write(c, twoGlyphs(), text.String("AB"), 0, 0, fb.White.Ink(), fb.Transparent, 255)
	if wa != wc {
		t.Fatalf("advance %d != %d", wa, wc)
	}
	for i := range a.Pix() {
		if a.Pix()[i] != c.Pix()[i] {
			t.Fatalf("pix[%d] differs", i)
		}
	}
	if w, _ := Write(fb.New(4, 4), twoGlyphs(), text.Rune(0x141), 0, 0, fb.White.Ink(), fb.Transparent, 255); w != 3 {
		t.Fatalf("code point advance=%d", w)
	}
}

func TestWrite_BlendsOverDestination(t *testing.T) {
	b := fb.New(3, 2)
	if _, err := Write(b, twoGlyphs(), text.Rune('A'), 0, 0, fb.White.Ink(), fb.Transparent, 128); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := b.Pixel(0, 0), fb.Blend(fb.White, fb.Black, 128); got != want {
		t.Fatalf("blended %#04x, want %#04x", got, want)
	}
}

func TestWrite_Clips(t *testing.T) {
	b := fb.New(2, 2)
	if _, err := Write(b, twoGlyphs(), text.String("AB"), -1, 1, fb.White.Ink(), fb.Blue.Ink(), 255); err != nil {
		t.Fatalf("Write: %v", err)
	}
	expect(t, b, map[[2]int]fb.Color{{0, 1}: fb.Blue, {1, 1}: fb.White, {0, 0}: fb.Black})
}

func TestWrite_Malformed(t *testing.T) {
	tests := map[string]func(f *Font){
		"widths":       func(f *Font) { f.Widths = f.Widths[:1] },
		"offsets":      func(f *Font) { f.Offsets = f.Offsets[:1] },
		"offset width": func(f *Font) { f.OffsetWidth = 4 },
		"bitmaps":      func(f *Font) { f.Bitmaps = f.Bitmaps[:1] },
		"bpp":          func(f *Font) { f.BPP = 0 },
	}
	for name, mutate := range tests {
		f := twoGlyphs()
		mutate(f)
		b := fb.New(8, 4)
		if _, err := Write(b, f, text.String("AB"), 0, 0, fb.White.Ink(), fb.Blue.Ink(), 255); !errors.Is(err, ErrMalformedFont) {
			t.Errorf("%s: err=%v", name, err)
		}
		for i, v := range b.Pix() {
			if v != 0 {
				t.Fatalf("%s: pix[%d] written", name, i)
			}
		}
	}
	if _, err := Write(fb.New(1, 1), twoGlyphs(), text.Source{}, 0, 0, fb.White.Ink(), fb.Transparent, 255); !errors.Is(err, text.ErrUnsupportedSource) {
		t.Fatalf("err=%v", err)
	}
}

func TestMeasure(t *testing.T) {
	f := twoGlyphs()
	if got := Measure(f, text.String("AB?A")); got != 8 {
		t.Fatalf("Measure=%d, want 8", got)
	}
	if got := Measure(f, text.Raw([]byte("B"))); got != 2 {
		t.Fatalf("Measure raw=%d", got)
	}
}

func TestFromFace(t *testing.T) {
	f := FromFace("fixed7x13", basicfont.Face7x13)
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f.Height != 13 {
		t.Fatalf("height=%d", f.Height)
	}
	if Measure(f, text.String("i")) >= Measure(f, text.String("M")) {
		t.Fatalf("font is not proportional")
	}
	b := fb.New(40, 13)
	w, err := Write(b, f, text.String("Hi"), 0, 0, fb.White.Ink(), fb.Transparent, 255)
	if err != nil || w != Measure(f, text.String("Hi")) {
		t.Fatalf("w=%d err=%v", w, err)
	}
	inked := 0
	for _, v := range b.Pix() {
		if v != 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Fatalf("nothing drawn")
	}
}

func TestFonter(t *testing.T) {
	f := twoGlyphs()
	want := fb.New(8, 4)
	if _, err := Write(want, f, text.String("AB"), 1, 1, fb.White.Ink(), fb.Transparent, 255); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := fb.New(8, 4)
	tinyfont.WriteLine(got.Displayer(nil), f.Fonter(), 1, 2, "AB", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	for i := range want.Pix() {
		if got.Pix()[i] != want.Pix()[i] {
			t.Fatalf("pix[%d]=%#04x, want %#04x", i, got.Pix()[i], want.Pix()[i])
		}
	}

	if _, w := tinyfont.LineWidth(f.Fonter(), "AB"); w != 5 {
		t.Fatalf("LineWidth=%d", w)
	}
}

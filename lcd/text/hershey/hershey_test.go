package hershey

import (
	"errors"
	"testing"

	"s3lcd/lcd/fb"
	"s3lcd/lcd/text"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := Encode("test", map[byte]Glyph{
		'A': {Left: -2, Right: 2, Strokes: [][][2]int{{{-2, 0}, {2, 0}}}},
		'B': {Left: 0, Right: 3, Strokes: [][][2]int{
			{{0, -1}, {0, 1}},
			{{2, -1}, {2, 1}},
		}},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return f
}

func row(b *fb.Buffer, y int) []bool {
	out := make([]bool, b.Width())
	for x := range out {
		out[x] = b.Pixel(x, y) != fb.Black
	}
	return out
}

func TestDraw_AdvanceAndStrokes(t *testing.T) {
	f := testFont(t)
	b := fb.New(32, 12)
	w, err := Draw(b, f, text.String("AA"), 10, 5, fb.White, 1, 255)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if w != 8 {
		t.Fatalf("advance=%d, want 8", w)
	}
	r := row(b, 5)
	for x := 0; x < 32; x++ {
		want := x >= 10 && x <= 18
		if r[x] != want {
			t.Fatalf("x=%d set=%v, want %v", x, r[x], want)
		}
	}
}

func TestDraw_PenUp(t *testing.T) {
	f := testFont(t)
	b := fb.New(10, 10)
	if _, err := Draw(b, f, text.Rune('B'), 2, 5, fb.White, 1, 255); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	for y := 4; y <= 6; y++ {
		if b.Pixel(2, y) == fb.Black || b.Pixel(4, y) == fb.Black {
			t.Fatalf("stroke missing at y=%d", y)
		}
		if b.Pixel(3, y) != fb.Black {
			t.Fatalf("pen-up joined strokes at y=%d", y)
		}
	}
}

func TestDraw_CodePointMasked(t *testing.T) {
	f := testFont(t)
	a := fb.New(20, 10)
	b := fb.New(20, 10)
	if _, err := Draw(a, f, text.Rune(0x141), 2, 2, fb.Red, 1, 255); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if _, err := Draw(b, f, text.String("\nA"), 2, 2, fb.Red, 1, 255); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	for i := range a.Pix() {
		if a.Pix()[i] != b.Pix()[i] {
			t.Fatalf("pix[%d] differs", i)
		}
	}
	if a.Pixel(2, 2) != fb.Red {
		t.Fatalf("glyph not drawn")
	}
}

func TestDraw_Scale(t *testing.T) {
	f := testFont(t)
	b := fb.New(40, 10)
	w, err := Draw(b, f, text.String("A"), 0, 3, fb.White, 2, 255)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if w != 8 || b.Pixel(8, 3) == fb.Black || b.Pixel(9, 3) != fb.Black {
		t.Fatalf("scaled advance=%d", w)
	}
}

func TestMeasure(t *testing.T) {
	f := testFont(t)
	tests := []struct {
		src   text.Source
		scale float64
		want  int
	}{
		{text.String("AA"), 1, 8},
		{text.String("AB"), 1, 7},
		{text.String("AA"), 2, 16},
		{text.String("A"), 0.5, 2},
		{text.String("\x01\x02"), 1, 0},
		{text.Source{}, 1, 0},
	}
	for _, tt := range tests {
		if got := Measure(f, tt.src, tt.scale); got != tt.want {
			t.Errorf("Measure(%v, %v)=%d, want %d", tt.src.Kind(), tt.scale, got, tt.want)
		}
	}
}

func TestDraw_Errors(t *testing.T) {
	b := fb.New(4, 4)
	if _, err := Draw(b, testFont(t), text.Source{}, 0, 0, fb.White, 1, 255); !errors.Is(err, text.ErrUnsupportedSource) {
		t.Fatalf("err=%v", err)
	}
	bad := &Font{Index: []byte{0xFF, 0x7F}, Data: []byte{0}}
	if _, err := Draw(b, bad, text.String(" "), 0, 0, fb.White, 1, 255); !errors.Is(err, ErrMalformedFont) {
		t.Fatalf("err=%v", err)
	}
}

func TestSegment_Digit(t *testing.T) {
	b := fb.New(60, 40)
	w, err := Draw(b, Segment, text.String("8"), 20, 20, fb.Green, 1, 255)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if w != 14 {
		t.Fatalf("advance=%d", w)
	}
	for _, p := range [][2]int{{22, 10}, {32, 10}, {22, 30}, {32, 30}, {27, 20}} {
		if b.Pixel(p[0], p[1]) != fb.Green {
			t.Fatalf("segment pixel %v missing", p)
		}
	}
	if b.Pixel(27, 15) != fb.Black {
		t.Fatalf("interior drawn")
	}
	if got := Measure(Segment, text.String("12:30"), 1); got != 14*4+6 {
		t.Fatalf("Measure=%d", got)
	}
}

func TestEncode_RangeCheck(t *testing.T) {
	_, err := Encode("bad", map[byte]Glyph{'x': {Strokes: [][][2]int{{{100, 0}}}}})
	if err == nil {
		t.Fatalf("out of range coordinate accepted")
	}
}

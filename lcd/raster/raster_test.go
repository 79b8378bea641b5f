package raster

import (
	"errors"
	"math"
	"testing"

	"s3lcd/lcd/fb"
)

func set(b *fb.Buffer) map[[2]int]bool {
	m := make(map[[2]int]bool)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.Pixel(x, y) != fb.Black {
				m[[2]int{x, y}] = true
			}
		}
	}
	return m
}

func sameBuffers(t *testing.T, got, want *fb.Buffer) {
	t.Helper()
	for i := range want.Pix() {
		if got.Pix()[i] != want.Pix()[i] {
			x, y := i%want.Width(), i/want.Width()
			t.Fatalf("(%d,%d)=%#04x, want %#04x", x, y, got.Pix()[i], want.Pix()[i])
		}
	}
}

func TestLine_Endpoints(t *testing.T) {
	tests := []struct{ x0, y0, x1, y1, n int }{
		{0, 0, 9, 0, 10},
		{0, 0, 0, 9, 10},
		{0, 0, 9, 9, 10},
		{9, 2, 1, 5, 9},
		{3, 9, 5, 0, 10},
		{4, 4, 4, 4, 1},
	}
	for _, tt := range tests {
		b := fb.New(12, 12)
		Line(b, tt.x0, tt.y0, tt.x1, tt.y1, fb.White, 255)
		px := set(b)
		if !px[[2]int{tt.x0, tt.y0}] || !px[[2]int{tt.x1, tt.y1}] {
			t.Errorf("line %v: endpoints missing", tt)
		}
		if len(px) != tt.n {
			t.Errorf("line %v: %d pixels, want %d", tt, len(px), tt.n)
		}
	}
}

func TestLine_Clipped(t *testing.T) {
	b := fb.New(5, 5)
	Line(b, -10, 2, 20, 2, fb.Red, 255)
	for x := 0; x < 5; x++ {
		if b.Pixel(x, 2) != fb.Red {
			t.Fatalf("x=%d not drawn", x)
		}
	}
	if len(set(b)) != 5 {
		t.Fatalf("drew outside the row")
	}
}

func TestRect(t *testing.T) {
	b := fb.New(6, 6)
	Rect(b, 1, 1, 4, 3, fb.Green, 255)
	px := set(b)
	if len(px) != 10 {
		t.Fatalf("%d pixels, want 10", len(px))
	}
	for _, p := range [][2]int{{1, 1}, {4, 1}, {1, 3}, {4, 3}} {
		if !px[p] {
			t.Fatalf("corner %v missing", p)
		}
	}
	if px[[2]int{2, 2}] {
		t.Fatalf("interior filled")
	}
}

func TestCircle_Symmetric(t *testing.T) {
	b := fb.New(21, 21)
	Circle(b, 10, 10, 7, fb.White, 255)
	px := set(b)
	if len(px) == 0 {
		t.Fatalf("nothing drawn")
	}
	for p := range px {
		dx, dy := p[0]-10, p[1]-10
		for _, q := range [][2]int{{-dx, dy}, {dx, -dy}, {dy, dx}} {
			if !px[[2]int{10 + q[0], 10 + q[1]}] {
				t.Fatalf("point %v has no mirror %v", p, q)
			}
		}
		d := math.Hypot(float64(dx), float64(dy))
		if math.Abs(d-7) > 1 {
			t.Fatalf("point %v at distance %.2f", p, d)
		}
	}
	for _, p := range [][2]int{{10, 3}, {10, 17}, {3, 10}, {17, 10}} {
		if !px[p] {
			t.Fatalf("axis point %v missing", p)
		}
	}
}

func TestFillCircle_CoversOutline(t *testing.T) {
	outline := fb.New(21, 21)
	fill := fb.New(21, 21)
	Circle(outline, 10, 10, 6, fb.White, 255)
	FillCircle(fill, 10, 10, 6, fb.White, 255)
	filled := set(fill)
	for p := range set(outline) {
		if !filled[p] {
			t.Fatalf("outline point %v not filled", p)
		}
	}
	if !filled[[2]int{10, 10}] || filled[[2]int{10, 17}] {
		t.Fatalf("fill extent wrong")
	}
}

func TestFillPolygon_SquareEqualsFillRect(t *testing.T) {
	pts, err := PointsFromInts([][]int{{0, 0}, {9, 0}, {9, 9}, {0, 9}})
	if err != nil {
		t.Fatalf("PointsFromInts: %v", err)
	}
	got := fb.New(16, 16)
	want := fb.New(16, 16)
	if err := FillPolygon(got, pts, 0, 0, fb.Cyan, 255, 0, Point{}); err != nil {
		t.Fatalf("FillPolygon: %v", err)
	}
	want.FillRect(0, 0, 10, 10, fb.Cyan, 255)
	sameBuffers(t, got, want)
}

func TestFillPolygon_Offset(t *testing.T) {
	pts := []Point{{0, 0}, {3, 0}, {3, 2}, {0, 2}}
	got := fb.New(10, 10)
	want := fb.New(10, 10)
	if err := FillPolygon(got, pts, 5, 6, fb.Red, 255, 0, Point{}); err != nil {
		t.Fatalf("FillPolygon: %v", err)
	}
	want.FillRect(5, 6, 4, 3, fb.Red, 255)
	sameBuffers(t, got, want)
}

func TestFillPolygon_Triangle(t *testing.T) {
	b := fb.New(20, 20)
	pts := []Point{{0, 0}, {10, 10}, {0, 10}}
	if err := FillPolygon(b, pts, 0, 0, fb.White, 255, 0, Point{}); err != nil {
		t.Fatalf("FillPolygon: %v", err)
	}
	px := set(b)
	for y := 0; y <= 10; y++ {
		if !px[[2]int{0, y}] {
			t.Fatalf("left edge row %d missing", y)
		}
		if px[[2]int{y + 1, y}] {
			t.Fatalf("row %d filled past the hypotenuse", y)
		}
	}
}

func TestFillPolygon_TooComplex(t *testing.T) {
	// A comb with 17 teeth crosses row 5 34 times.
	var pts []Point
	for i := 0; i < 17; i++ {
		x := float64(i * 4)
		pts = append(pts, Point{x, 10}, Point{x + 1, 0}, Point{x + 2, 10})
	}
	pts = append(pts, Point{68, 12}, Point{0, 12})

	b := fb.New(80, 16)
	err := FillPolygon(b, pts, 0, 0, fb.White, 255, 0, Point{})
	if !errors.Is(err, ErrPolygonTooComplex) {
		t.Fatalf("err=%v, want ErrPolygonTooComplex", err)
	}
	if len(set(b)) != 0 {
		t.Fatalf("overflowing polygon wrote pixels")
	}
}

func TestFillPolygon_VertexLimitNeverOverflows(t *testing.T) {
	pts := make([]Point, MaxPolygonVertices)
	for i := range pts {
		x := float64(i * 2)
		y := 0.0
		if i%2 == 1 {
			y = 20
		}
		pts[i] = Point{x, y}
	}
	b := fb.New(80, 24)
	if err := FillPolygon(b, pts, 0, 0, fb.White, 255, 0, Point{}); err != nil {
		t.Fatalf("FillPolygon: %v", err)
	}
}

func TestFillPolygon_Degenerate(t *testing.T) {
	b := fb.New(4, 4)
	for _, pts := range [][]Point{nil, {{1, 1}}, {{1, 1}, {2, 2}}, {{1, 1}, {1, 1}, {1, 1}}} {
		if err := FillPolygon(b, pts, 0, 0, fb.White, 255, 0, Point{}); !errors.Is(err, ErrDegeneratePolygon) {
			t.Errorf("%v: err=%v", pts, err)
		}
	}
	if err := Polygon(b, nil, 0, 0, fb.White, 255, 0, Point{}); !errors.Is(err, ErrDegeneratePolygon) {
		t.Errorf("outline err=%v", err)
	}
}

func TestPolygon_Closed(t *testing.T) {
	b := fb.New(8, 8)
	pts := []Point{{1, 1}, {6, 1}, {6, 6}, {1, 6}}
	if err := Polygon(b, pts, 0, 0, fb.White, 255, 0, Point{}); err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	want := fb.New(8, 8)
	Rect(want, 1, 1, 6, 6, fb.White, 255)
	sameBuffers(t, b, want)
}

func TestPolygon_NegativeCoordinatesFloor(t *testing.T) {
	b := fb.New(8, 8)
	pts := []Point{{-0.5, -0.5}, {3.5, -0.5}, {3.5, 3.5}, {-0.5, 3.5}}
	if err := Polygon(b, pts, 2, 2, fb.White, 255, 0, Point{}); err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	want := fb.New(8, 8)
	Rect(want, 1, 1, 5, 5, fb.White, 255)
	sameBuffers(t, b, want)
}

func TestRotate(t *testing.T) {
	pts := []Point{{10, 5}}
	out := Rotate(pts, Point{5, 5}, math.Pi/2)
	if math.Abs(out[0].X-5) > 1e-9 || math.Abs(out[0].Y-10) > 1e-9 {
		t.Fatalf("rotated to %+v", out[0])
	}
	if pts[0] != (Point{10, 5}) {
		t.Fatalf("input modified: %+v", pts[0])
	}
	same := Rotate(pts, Point{}, 0)
	same[0].X = 99
	if pts[0].X != 10 {
		t.Fatalf("zero rotation aliases input")
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		pts  []Point
		x, y int
	}{
		{[]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 5, 5},
		{[]Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, 5, 5},
		{[]Point{{0, 0}, {9, 0}, {0, 9}}, 3, 3},
		{[]Point{{20, 20}, {40, 20}, {40, 30}, {20, 30}}, 30, 25},
	}
	for _, tt := range tests {
		x, y, err := Centroid(tt.pts)
		if err != nil {
			t.Fatalf("Centroid(%v): %v", tt.pts, err)
		}
		if x != tt.x || y != tt.y {
			t.Errorf("Centroid(%v)=(%d,%d), want (%d,%d)", tt.pts, x, y, tt.x, tt.y)
		}
	}

	if _, _, err := Centroid(nil); !errors.Is(err, ErrDegeneratePolygon) {
		t.Fatalf("empty err=%v", err)
	}
	if _, _, err := Centroid([]Point{{0, 0}, {1, 1}, {2, 2}}); !errors.Is(err, ErrDegeneratePolygon) {
		t.Fatalf("collinear err=%v", err)
	}
}

func TestPointsFromInts(t *testing.T) {
	if _, err := PointsFromInts([][]int{{1, 2}, {3}}); !errors.Is(err, ErrPolygonData) {
		t.Fatalf("err=%v", err)
	}
	pts, err := PointsFromInts([][]int{{1, 2, 9}})
	if err != nil || pts[0] != (Point{1, 2}) {
		t.Fatalf("pts=%v err=%v", pts, err)
	}
}

package raster

import (
	"errors"
	"fmt"
	"math"

	"s3lcd/lcd/fb"
)

const (
	// MaxNodes is the number of edge crossings FillPolygon keeps per
	// scanline.
	MaxNodes = 32
	// MaxPolygonVertices is the largest polygon that can never exceed
	// MaxNodes: each edge crosses a scanline at most once.
	MaxPolygonVertices = MaxNodes
)

var (
	ErrPolygonTooComplex = errors.New("raster: polygon too complex")
	ErrDegeneratePolygon = errors.New("raster: degenerate polygon")
	ErrPolygonData       = errors.New("raster: polygon data error")
)

// Point is a polygon vertex.
type Point struct {
	X, Y float64
}

// PointsFromInts converts coordinate tuples. Entries past the second are
// ignored.
func PointsFromInts(coords [][]int) ([]Point, error) {
	pts := make([]Point, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("raster: vertex %d has %d coordinates: %w", i, len(c), ErrPolygonData)
		}
		pts[i] = Point{X: float64(c[0]), Y: float64(c[1])}
	}
	return pts, nil
}

// Rotate returns pts rotated by angle radians around center.
func Rotate(pts []Point, center Point, angle float64) []Point {
	out := make([]Point, len(pts))
	if angle == 0 {
		copy(out, pts)
		return out
	}
	sin, cos := math.Sincos(angle)
	for i, p := range pts {
		dx, dy := p.X-center.X, p.Y-center.Y
		out[i] = Point{
			X: center.X + dx*cos - dy*sin,
			Y: center.Y + dx*sin + dy*cos,
		}
	}
	return out
}

// Polygon draws the closed outline of pts, rotated by angle around center,
// offset by (x, y).
func Polygon(dst *fb.Buffer, pts []Point, x, y int, c fb.Color, alpha uint8, angle float64, center Point) error {
	if len(pts) == 0 {
		return ErrDegeneratePolygon
	}
	pts = Rotate(pts, center, angle)
	prev := pts[len(pts)-1]
	for _, p := range pts {
		Line(dst,
			floor(prev.X)+x, floor(prev.Y)+y,
			floor(p.X)+x, floor(p.Y)+y,
			c, alpha)
		prev = p
	}
	return nil
}

func floor(v float64) int { return int(math.Floor(v)) }

// FillPolygon fills pts, rotated by angle around center, offset by (x, y).
//
// Vertex coordinates are pixel positions and both bounding edges are
// filled, so the square (0,0) (9,0) (9,9) (0,9) covers the same pixels as
// FillRect(0, 0, 10, 10). Nothing is drawn if any scanline crosses more
// than MaxNodes edges.
func FillPolygon(dst *fb.Buffer, pts []Point, x, y int, c fb.Color, alpha uint8, angle float64, center Point) error {
	if len(pts) < 3 {
		return ErrDegeneratePolygon
	}
	pts = Rotate(pts, center, angle)

	minX, maxX := math.MaxInt, math.MinInt
	minY, maxY := math.MaxInt, math.MinInt
	for _, p := range pts {
		px, py := int(math.Floor(p.X)), int(math.Floor(p.Y))
		minX, maxX = min(minX, px), max(maxX, px)
		minY, maxY = min(minY, py), max(maxY, py)
	}
	if minY == maxY && minX == maxX {
		return ErrDegeneratePolygon
	}

	var nodes [MaxNodes]int
	for row := minY; row <= maxY; row++ {
		if _, err := scanline(pts, row, maxY, nil); err != nil {
			return fmt.Errorf("raster: scanline %d: %w", row, err)
		}
	}

	for row := minY; row <= maxY; row++ {
		n, _ := scanline(pts, row, maxY, nodes[:])
		sortNodes(nodes[:n])
		for i := 0; i+1 < n; i += 2 {
			x0, x1 := nodes[i], nodes[i+1]
			if x0 > maxX {
				break
			}
			if x1 < minX {
				continue
			}
			x0 = max(x0, minX)
			x1 = min(x1, maxX)
			dst.HLine(x+x0, y+row, x1-x0+1, c, alpha)
		}
	}
	return nil
}

// scanline collects the x crossings of row into nodes, or only counts them
// when nodes is nil. An edge covers rows [top, bottom); the polygon's last
// row also takes the edges that end on it.
func scanline(pts []Point, row, maxY int, nodes []int) (int, error) {
	fy := float64(row)
	n := 0
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		j = i
		top, bottom := pi.Y, pj.Y
		if top > bottom {
			top, bottom = bottom, top
		}
		if top == bottom {
			continue
		}
		in := math.Floor(top) <= fy && fy < math.Floor(bottom)
		if !in && row == maxY && int(math.Floor(bottom)) == maxY {
			in = true
		}
		if !in {
			continue
		}
		if n == MaxNodes {
			return n, ErrPolygonTooComplex
		}
		if nodes != nil {
			nodes[n] = int(math.Floor(pi.X + (fy-pi.Y)/(pj.Y-pi.Y)*(pj.X-pi.X)))
		}
		n++
	}
	return n, nil
}

func sortNodes(a []int) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for ; j >= 0 && a[j] > v; j-- {
			a[j+1] = a[j]
		}
		a[j+1] = v
	}
}

// Centroid returns the area-weighted center of pts. Vertices are truncated
// to integers first.
func Centroid(pts []Point) (int, int, error) {
	if len(pts) == 0 {
		return 0, 0, ErrDegeneratePolygon
	}
	var sum float64
	var vsx, vsy int
	for i := range pts {
		v1, v2 := pts[i], pts[(i+1)%len(pts)]
		x1, y1 := int(v1.X), int(v1.Y)
		x2, y2 := int(v2.X), int(v2.Y)
		cross := float64(x1*y2 - y1*x2)
		sum += cross
		vsx += int(float64(x1+x2) * cross)
		vsy += int(float64(y1+y2) * cross)
	}
	if sum == 0 {
		return 0, 0, ErrDegeneratePolygon
	}
	z := 1 / (3 * sum)
	return int(float64(vsx) * z), int(float64(vsy) * z), nil
}

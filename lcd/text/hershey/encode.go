package hershey

import "fmt"

// Glyph describes one character for Encode. Strokes are polylines in glyph
// units; the pen lifts between them.
type Glyph struct {
	Left, Right int
	Strokes     [][][2]int
}

// Encode packs glyphs into a Font. Codes without a glyph get an empty one.
// Coordinates must fit in a signed byte once offset by 'R'.
func Encode(name string, glyphs map[byte]Glyph) (*Font, error) {
	f := &Font{Name: name, Index: make([]byte, 2*(last-first+1))}
	// Shared empty glyph.
	f.Data = append(f.Data, 0, origin, origin)

	for c := first; c <= last; c++ {
		g, ok := glyphs[byte(c)]
		if !ok {
			continue
		}
		off := len(f.Data)
		if off > 0xFFFF {
			return nil, fmt.Errorf("hershey: %s: data exceeds 64KiB", name)
		}
		f.Index[2*(c-first)] = byte(off)
		f.Index[2*(c-first)+1] = byte(off >> 8)

		var pairs []byte
		for i, stroke := range g.Strokes {
			if i > 0 {
				pairs = append(pairs, penUp, origin)
			}
			for _, p := range stroke {
				x, err := coord(p[0])
				if err != nil {
					return nil, fmt.Errorf("hershey: %s: glyph %q: %w", name, rune(c), err)
				}
				y, err := coord(p[1])
				if err != nil {
					return nil, fmt.Errorf("hershey: %s: glyph %q: %w", name, rune(c), err)
				}
				pairs = append(pairs, x, y)
			}
		}
		if len(pairs)/2 > 127 {
			return nil, fmt.Errorf("hershey: %s: glyph %q has too many points", name, rune(c))
		}
		left, err := coord(g.Left)
		if err != nil {
			return nil, err
		}
		right, err := coord(g.Right)
		if err != nil {
			return nil, err
		}
		f.Data = append(f.Data, byte(len(pairs)/2), left, right)
		f.Data = append(f.Data, pairs...)
	}
	return f, nil
}

func coord(v int) (byte, error) {
	b := v + origin
	if b <= penUp || b > 127 {
		return 0, fmt.Errorf("coordinate %d out of range", v)
	}
	return byte(b), nil
}

package hershey

// Segment is a built-in seven-segment stroke font covering digits, space
// and ": . - + /". Glyphs are 14 units wide and 20 tall, centered on y=0.
var Segment = mustEncode("segment", segmentGlyphs())

func mustEncode(name string, glyphs map[byte]Glyph) *Font {
	f, err := Encode(name, glyphs)
	if err != nil {
		panic(err)
	}
	return f
}

func segmentGlyphs() map[byte]Glyph {
	seg := map[byte][][2]int{
		'a': {{-5, -10}, {5, -10}},
		'b': {{5, -10}, {5, 0}},
		'c': {{5, 0}, {5, 10}},
		'd': {{5, 10}, {-5, 10}},
		'e': {{-5, 10}, {-5, 0}},
		'f': {{-5, 0}, {-5, -10}},
		'g': {{-5, 0}, {5, 0}},
	}
	digits := map[byte]string{
		'0': "abcdef",
		'1': "bc",
		'2': "abged",
		'3': "abgcd",
		'4': "fgbc",
		'5': "afgcd",
		'6': "afgedc",
		'7': "abc",
		'8': "abcdefg",
		'9': "abcdfg",
	}

	glyphs := map[byte]Glyph{
		' ': {Left: -7, Right: 7},
		':': {Left: -3, Right: 3, Strokes: [][][2]int{
			{{0, -5}, {0, -4}},
			{{0, 4}, {0, 5}},
		}},
		'.': {Left: -3, Right: 3, Strokes: [][][2]int{{{0, 9}, {0, 10}}}},
		'-': {Left: -7, Right: 7, Strokes: [][][2]int{seg['g']}},
		'+': {Left: -7, Right: 7, Strokes: [][][2]int{seg['g'], {{0, -5}, {0, 5}}}},
		'/': {Left: -7, Right: 7, Strokes: [][][2]int{{{-5, 10}, {5, -10}}}},
	}
	for d, segs := range digits {
		g := Glyph{Left: -7, Right: 7}
		for i := 0; i < len(segs); i++ {
			g.Strokes = append(g.Strokes, seg[segs[i]])
		}
		glyphs[d] = g
	}
	return glyphs
}

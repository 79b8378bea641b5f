// Package bitstream reads MSB-first packed bit fields.
package bitstream

// Reader is a cursor over data. Each glyph or frame decode owns its own.
type Reader struct {
	data []byte
	pos  int
}

// NewReader starts reading data at bit offset pos.
func NewReader(data []byte, pos int) *Reader {
	return &Reader{data: data, pos: pos}
}

// Read returns the next n bits, n <= 32. Bits past the end read as zero.
func (r *Reader) Read(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v <<= 1
		byteIdx := r.pos >> 3
		if byteIdx < len(r.data) && r.data[byteIdx]&(0x80>>(r.pos&7)) != 0 {
			v |= 1
		}
		r.pos++
	}
	return v
}

// Pos returns the bit offset of the next read.
func (r *Reader) Pos() int { return r.pos }

// Fits reports whether n bits starting at bit offset pos lie within data.
func Fits(data []byte, pos, n int) bool {
	return pos >= 0 && n >= 0 && pos+n <= len(data)*8
}

package bitmap

import (
	"encoding/binary"
	"fmt"

	"s3lcd/lcd/fb"
)

// Serialized palette bitmaps, all fields big-endian:
//
//	"S3BM" width:u16 height:u16 bpp:u8 frames:u16 colors:u16
//	palette:colors*u16 bitmap:...
const (
	magic      = "S3BM"
	headerSize = len(magic) + 2 + 2 + 1 + 2 + 2
)

// Parse decodes a serialized Palette. The bitmap slice aliases data.
func Parse(data []byte) (*Palette, error) {
	if len(data) < headerSize || string(data[:4]) != magic {
		return nil, fmt.Errorf("%w: missing %s header", ErrFormat, magic)
	}
	be := binary.BigEndian
	p := &Palette{
		Width:  int(be.Uint16(data[4:])),
		Height: int(be.Uint16(data[6:])),
		BPP:    int(data[8]),
		Frames: int(be.Uint16(data[9:])),
	}
	n := int(be.Uint16(data[11:]))
	body := data[headerSize:]
	if len(body) < n*2 {
		return nil, fmt.Errorf("%w: %d palette entries in %d bytes", ErrFormat, n, len(body))
	}
	p.Palette = make([]fb.Color, n)
	for i := range p.Palette {
		p.Palette[i] = fb.Color(be.Uint16(body[i*2:]))
	}
	p.Bitmap = body[n*2:]
	return p, nil
}

// MarshalBinary encodes p in the format read by Parse.
func (p *Palette) MarshalBinary() ([]byte, error) {
	if p.Width > 0xFFFF || p.Height > 0xFFFF || p.Frames > 0xFFFF || len(p.Palette) > 0xFFFF ||
		p.Width < 0 || p.Height < 0 || p.Frames < 0 || p.BPP < 1 || p.BPP > 8 {
		return nil, fmt.Errorf("%w: %dx%d at %d bpp", ErrFormat, p.Width, p.Height, p.BPP)
	}
	out := make([]byte, 0, headerSize+len(p.Palette)*2+len(p.Bitmap))
	out = append(out, magic...)
	out = binary.BigEndian.AppendUint16(out, uint16(p.Width))
	out = binary.BigEndian.AppendUint16(out, uint16(p.Height))
	out = append(out, byte(p.BPP))
	out = binary.BigEndian.AppendUint16(out, uint16(p.Frames))
	out = binary.BigEndian.AppendUint16(out, uint16(len(p.Palette)))
	for _, c := range p.Palette {
		out = binary.BigEndian.AppendUint16(out, uint16(c))
	}
	return append(out, p.Bitmap...), nil
}

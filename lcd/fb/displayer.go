package fb

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer adapts b to drivers.Displayer so tinyfont and tinyterm can
// draw into it. Display is a no-op unless flush is set.
func (b *Buffer) Displayer(flush func() error) drivers.Displayer {
	return bufferDisplayer{b: b, flush: flush}
}

type bufferDisplayer struct {
	b     *Buffer
	flush func() error
}

func (d bufferDisplayer) Size() (int16, int16) {
	return int16(d.b.width), int16(d.b.height)
}

// SetPixel blends c over the buffer using c.A.
func (d bufferDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.b.SetPixel(int(x), int(y), FromRGBA(c), c.A)
}

func (d bufferDisplayer) Display() error {
	if d.flush == nil {
		return nil
	}
	return d.flush()
}

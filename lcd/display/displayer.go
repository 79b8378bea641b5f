package display

import (
	"image/color"

	"s3lcd/hal"
	"s3lcd/lcd/fb"

	"tinygo.org/x/drivers"
)

// Displayer adapts d to drivers.Displayer and to the terminal interface of
// tinyterm. Pixels blend by their alpha channel.
func (d *Display) Displayer() *Adapter {
	return &Adapter{d: d}
}

type Adapter struct {
	d *Display
}

var _ drivers.Displayer = (*Adapter)(nil)

func (a *Adapter) Size() (int16, int16) {
	return int16(a.d.Width()), int16(a.d.Height())
}

func (a *Adapter) SetPixel(x, y int16, c color.RGBA) {
	a.d.Pixel(int(x), int(y), fb.FromRGBA(c), c.A)
}

// Display flushes the framebuffer.
func (a *Adapter) Display() error {
	return a.d.Show()
}

func (a *Adapter) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	a.d.FillRect(int(x), int(y), int(width), int(height), fb.FromRGBA(c), c.A)
	return nil
}

// SetScroll sets the hardware vertical scroll start line. The terminal
// interface has no error return, so failures are logged.
func (a *Adapter) SetScroll(line int16) {
	if err := a.d.VScrollStart(uint16(line)); err != nil {
		hal.Logf(a.d.log, "s3lcd: scroll to line %d: %v", line, err)
	}
}

func (a *Adapter) SetRotation(r drivers.Rotation) error {
	return a.d.SetRotation(int(r))
}

// ScrollUp moves the framebuffer up by pixels rows and fills the bottom
// with bg.
func (a *Adapter) ScrollUp(pixels int16, bg color.RGBA) error {
	a.d.Scroll(0, -int(pixels), fb.FromRGBA(bg))
	return nil
}

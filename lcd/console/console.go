// Package console runs a VT100-style text terminal on a display.
package console

import (
	"s3lcd/lcd/display"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// Config selects the terminal font. Zero values use proggy TinySZ8pt7b.
type Config struct {
	Font       tinyfont.Fonter
	FontHeight int16
	FontOffset int16

	// HardwareScroll scrolls with the panel's vertical scrolling area
	// instead of moving framebuffer rows.
	HardwareScroll bool
}

type Console struct {
	d *display.Display
	t *tinyterm.Terminal
}

func New(d *display.Display, cfg Config) (*Console, error) {
	if cfg.Font == nil {
		cfg.Font = &proggy.TinySZ8pt7b
		cfg.FontHeight, cfg.FontOffset = 10, 6
	}
	if cfg.FontHeight <= 0 {
		cfg.FontHeight = int16(cfg.Font.GetYAdvance())
	}
	if cfg.HardwareScroll {
		if err := d.VScrollDef(0, uint16(d.Height()), 0); err != nil {
			return nil, err
		}
	}
	t := tinyterm.NewTerminal(d.Displayer())
	t.Configure(&tinyterm.Config{
		Font:              cfg.Font,
		FontHeight:        cfg.FontHeight,
		FontOffset:        cfg.FontOffset,
		UseSoftwareScroll: !cfg.HardwareScroll,
	})
	return &Console{d: d, t: t}, nil
}

// Write renders p into the framebuffer. Escape sequences are interpreted.
func (c *Console) Write(p []byte) (int, error) {
	return c.t.Write(p)
}

// Flush shows the framebuffer.
func (c *Console) Flush() error {
	return c.d.Show()
}

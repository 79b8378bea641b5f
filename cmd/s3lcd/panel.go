package main

import (
	"path/filepath"

	"s3lcd/hal"
	"s3lcd/lcd/display"
	"s3lcd/lcd/pngcodec"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

type panelFlags struct {
	width, height int
	rotation      int
	dmaRows       int
	swap          bool
	verbose       bool
}

// openStore returns the storage holding the files of dir.
var openStore = func(dir string) hal.Storage {
	return hal.DirStorage{Root: dir}
}

// openDisplay builds an initialized display over an in-memory panel.
// With --verbose, display events are logged to the command's stderr.
func openDisplay(cmd *cobra.Command) (*display.Display, *hal.Panel, error) {
	cfg := display.Config{
		Width:     panelFlag.width,
		Height:    panelFlag.height,
		Rotation:  panelFlag.rotation,
		DMARows:   panelFlag.dmaRows,
		SwapBytes: panelFlag.swap,
	}
	if panelFlag.verbose {
		cfg.Logger = hal.NewLogger(cmd.ErrOrStderr())
	}
	cols, rows := display.MemorySize(display.Rotations(cfg.Width, cfg.Height))
	p := hal.NewPanel(cols, rows)
	p.BigEndian = cfg.SwapBytes
	d, err := display.New(p, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, 0)
	}
	if err := d.Init(); err != nil {
		return nil, nil, errors.Wrap(err, 0)
	}
	return d, p, nil
}

// snapshot flushes d and encodes its framebuffer to path.
func snapshot(d *display.Display, path string) (int64, error) {
	if err := d.Show(); err != nil {
		return 0, errors.Wrap(err, 0)
	}
	n, err := d.PNGWrite(openStore(filepath.Dir(path)), filepath.Base(path), pngcodec.Region{})
	if err != nil {
		return 0, errors.Wrap(err, 0)
	}
	return n, nil
}

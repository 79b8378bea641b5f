//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"s3lcd/app"
	"s3lcd/hal"
	"s3lcd/lcd/display"
)

func main() {
	var cfg hal.HeadlessConfig
	var dc display.Config
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frame rate.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.IntVar(&dc.Width, "width", 240, "Panel width in its native orientation.")
	flag.IntVar(&dc.Height, "height", 320, "Panel height in its native orientation.")
	flag.IntVar(&dc.Rotation, "rotation", 0, "Initial rotation index.")
	flag.IntVar(&dc.DMARows, "dma-rows", display.DefaultDMARows, "Rows per flush band.")
	flag.BoolVar(&dc.SwapBytes, "swap", false, "Send pixels big-endian.")
	flag.Parse()

	log := hal.NewLogger(nil)
	dc.Logger = log

	cols, rows := display.MemorySize(display.Rotations(dc.Width, dc.Height))
	p := hal.NewPanel(cols, rows)
	p.BigEndian = dc.SwapBytes
	d, err := display.New(p, dc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := d.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	scene, err := app.NewScene(d, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	step := func() error {
		if err := scene.Step(); err != nil {
			app.Fault(d, log, err)
			return err
		}
		return nil
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, step, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		hal.Logf(log, "%s: %d frames", d, scene.Frame())
		return
	}

	if err := hal.RunWindow(p, hal.WindowConfig{TPS: cfg.Hz}, step); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

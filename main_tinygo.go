//go:build tinygo && baremetal && picocalc

package main

import (
	"time"

	"s3lcd/app"
	"s3lcd/hal"
	"s3lcd/lcd/display"
)

func main() {
	b, err := hal.NewBoard()
	if err != nil {
		halt(nil, nil, err)
	}
	d, err := display.New(b.Transport, display.Config{
		Width:     320,
		Height:    480,
		SwapBytes: true,
		Logger:    b.Logger,
	})
	if err != nil {
		halt(nil, b.Logger, err)
	}
	if err := d.Init(); err != nil {
		halt(d, b.Logger, err)
	}
	_ = app.Splash(d, "starting")

	scene, err := app.NewScene(d, b.Storage)
	if err != nil {
		halt(d, b.Logger, err)
	}
	for {
		start := time.Now()
		if err := scene.Step(); err != nil {
			halt(d, b.Logger, err)
		}
		if dt := time.Since(start); dt < 33*time.Millisecond {
			time.Sleep(33*time.Millisecond - dt)
		}
	}
}

func halt(d *display.Display, log hal.Logger, err error) {
	if log == nil {
		println("s3lcd:", err.Error())
	}
	app.Fault(d, log, err)
	select {}
}

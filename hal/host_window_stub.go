//go:build !tinygo && !cgo

package hal

import "errors"

// WindowConfig controls the desktop panel simulator.
type WindowConfig struct {
	Title string
	Scale int
	TPS   int
}

func RunWindow(_ *Panel, _ WindowConfig, _ func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}

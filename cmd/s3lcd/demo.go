package main

import (
	"fmt"

	"s3lcd/app"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVarP(&demoFrames, `frames`, `n`, 1, `frames to render before the snapshot`)
	demoCmd.Flags().StringVarP(&demoOut, `out`, `o`, `demo.png`, `snapshot file`)
}

var (
	demoFrames int
	demoOut    string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "render the demo scene and write a PNG snapshot",
	Args:  cobra.NoArgs,
	RunE:  demo,
}

func demo(cmd *cobra.Command, _ []string) error {
	if demoFrames < 1 {
		return errors.New(`--frames must be at least 1`)
	}
	d, _, err := openDisplay(cmd)
	if err != nil {
		return err
	}
	defer d.Deinit()
	scene, err := app.NewScene(d, nil)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	for i := 0; i < demoFrames; i++ {
		if err := scene.Render(); err != nil {
			return errors.Wrap(err, 0)
		}
	}
	n, err := snapshot(d, demoOut)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d bytes written to %s\n", d, scene.Frame(), n, demoOut)
	return nil
}

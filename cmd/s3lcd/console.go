package main

import (
	"fmt"
	"io"
	"strings"

	"s3lcd/lcd/console"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().StringVarP(&consoleOut, `out`, `o`, `console.png`, `snapshot file`)
	consoleCmd.Flags().BoolVar(&consoleHWScroll, `hw-scroll`, false, `scroll with the panel scrolling area`)
}

var (
	consoleOut      string
	consoleHWScroll bool
)

var consoleCmd = &cobra.Command{
	Use:   "console [text...]",
	Short: "render text through the VT100 console and write a PNG snapshot",
	Long: `Write the arguments, or stdin when there are none, to a VT100 console
on the panel. SGR color escapes are honored.`,
	RunE:  runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) > 0 {
		in = strings.NewReader(strings.Join(args, " ") + "\n")
	}
	d, _, err := openDisplay(cmd)
	if err != nil {
		return err
	}
	defer d.Deinit()
	c, err := console.New(d, console.Config{HardwareScroll: consoleHWScroll})
	if err != nil {
		return errors.Wrap(err, 0)
	}
	if _, err := io.Copy(c, in); err != nil {
		return errors.Wrap(err, 0)
	}
	n, err := snapshot(d, consoleOut)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes written to %s\n", d, n, consoleOut)
	return nil
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "s3lcd",
	Short:         "s3lcd render the RGB565 display core off-device",
	Long:          "s3lcd renders scenes and images through the display core into an emulated panel and writes PNG snapshots.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return errors.New(`no command given`)
	},
}

var (
	debug     bool
	panelFlag panelFlags
)

func init() {
	cobra.EnablePrefixMatching = true
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debug, `debug`, false, `print error stacks`)
	pf.IntVar(&panelFlag.width, `width`, 240, `panel width in its native orientation`)
	pf.IntVar(&panelFlag.height, `height`, 320, `panel height in its native orientation`)
	pf.IntVar(&panelFlag.rotation, `rotation`, 0, `rotation index`)
	pf.IntVar(&panelFlag.dmaRows, `dma-rows`, 16, `rows per flush band`)
	pf.BoolVar(&panelFlag.swap, `swap`, false, `send pixels big-endian`)
	pf.BoolVarP(&panelFlag.verbose, `verbose`, `v`, false, `log display events`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if stackFramer, ok := err.(interface{ ErrorStack() string }); debug && ok {
			fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

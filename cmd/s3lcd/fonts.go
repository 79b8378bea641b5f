package main

import (
	"fmt"
	"text/tabwriter"

	"s3lcd/lcd/text"
	"s3lcd/lcd/text/bitfont"
	"s3lcd/lcd/text/hershey"
	"s3lcd/lcd/text/mono"

	"github.com/spf13/cobra"
	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

func init() {
	rootCmd.AddCommand(fontsCmd)
	fontsCmd.Flags().StringVarP(&fontsSample, `sample`, `s`, `Hello, s3lcd`, `text to measure`)
}

var fontsSample string

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "list the built-in fonts and measure a sample string",
	Args:  cobra.NoArgs,
	RunE:  listFonts,
}

func listFonts(cmd *cobra.Command, _ []string) error {
	src := text.String(fontsSample)
	fixed := mono.FromFace("fixed7x13", basicfont.Face7x13)
	prop := bitfont.FromFace("prop7x13", basicfont.Face7x13)
	_, tinyWidth := tinyfont.LineWidth(&proggy.TinySZ8pt7b, fontsSample)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENGINE\tNAME\tHEIGHT\tWIDTH")
	fmt.Fprintf(w, "hershey\t%s\t-\t%d\n", hershey.Segment.Name, hershey.Measure(hershey.Segment, src, 1))
	fmt.Fprintf(w, "mono\t%s\t%d\t%d\n", fixed.Name, fixed.Height, mono.Measure(fixed, src))
	fmt.Fprintf(w, "bitfont\t%s\t%d\t%d\n", prop.Name, prop.Height, bitfont.Measure(prop, src))
	fmt.Fprintf(w, "tinyfont\t%s\t%d\t%d\n", "proggy-tinysz8pt7b", proggy.TinySZ8pt7b.GetYAdvance(), tinyWidth)
	return w.Flush()
}

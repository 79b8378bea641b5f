package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"s3lcd/hal"
	"s3lcd/lcd/jpegdec"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(jpgDecodeCmd)
	jpgDecodeCmd.Flags().StringVar(&jpgCrop, `crop`, ``, `crop rectangle x,y,w,h (-1 for full width or height)`)
	jpgDecodeCmd.Flags().StringVarP(&jpgOut, `out`, `o`, ``, `write the raw little-endian RGB565 pixels here`)
}

var (
	jpgCrop string
	jpgOut  string
)

var jpgDecodeCmd = &cobra.Command{
	Use:   "jpg-decode <file.jpg>",
	Short: "decode a JPEG into a raw RGB565 buffer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return jpgDecode(cmd, args[0])
	},
}

func jpgDecode(cmd *cobra.Command, name string) error {
	crop, err := parseCrop(jpgCrop)
	if err != nil {
		return err
	}
	img, err := jpegdec.Decode(jpegdec.FromFile(openStore(filepath.Dir(name)), filepath.Base(name)), crop)
	if err != nil {
		var jerr *jpegdec.Error
		if errors.As(err, &jerr) {
			return errors.Errorf("%s: %v (status %d)", name, err, jerr.Status)
		}
		return errors.Wrap(err, 0)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d bytes\n", name, img.Width, img.Height, len(img.Pixels))
	if jpgOut == "" {
		return nil
	}
	f, err := openStore(filepath.Dir(jpgOut)).Open(filepath.Base(jpgOut), hal.ModeCreate)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	if _, err := f.Write(img.Pixels); err != nil {
		f.Close()
		return errors.Wrap(err, 0)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}

func parseCrop(s string) (jpegdec.Crop, error) {
	if s == "" {
		return jpegdec.Crop{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return jpegdec.Crop{}, errors.Errorf("--crop %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return jpegdec.Crop{}, errors.Errorf("--crop %q: %v", s, err)
		}
		v[i] = n
	}
	return jpegdec.Crop{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

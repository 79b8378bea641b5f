package main

import (
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"s3lcd/hal"
	"s3lcd/lcd/fb"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showOut, `out`, `o`, `show.png`, `snapshot file`)
}

var showOut string

var showCmd = &cobra.Command{
	Use:   "show <image>",
	Short: "scale an image onto the panel and write a PNG snapshot",
	Long: `Decode an image (png, jpeg, gif, bmp, tiff or webp), scale it to fit
the rotated panel keeping its aspect ratio, blit it centered and write the
framebuffer as PNG.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return show(cmd, args[0])
	},
}

func show(cmd *cobra.Command, name string) error {
	f, err := openStore(filepath.Dir(name)).Open(filepath.Base(name), hal.ModeRead)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	defer f.Close()
	src, format, err := image.Decode(f)
	if err != nil {
		return errors.Errorf("%s: %v", name, err)
	}

	d, _, err := openDisplay(cmd)
	if err != nil {
		return err
	}
	defer d.Deinit()

	r := fit(src.Bounds().Size(), image.Pt(d.Width(), d.Height()))
	if r.Empty() {
		return errors.Errorf("%s: empty image", name)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	if err := d.BlitBuffer(rgb565LE(dst), r.Min.X, r.Min.Y, r.Dx(), r.Dy(), 255); err != nil {
		return errors.Wrap(err, 0)
	}
	n, err := snapshot(d, showOut)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %dx%d -> %dx%d at %d,%d, %d bytes written to %s\n",
		format, src.Bounds().Dx(), src.Bounds().Dy(), r.Dx(), r.Dy(), r.Min.X, r.Min.Y, n, showOut)
	return nil
}

// fit returns the largest rectangle with the aspect ratio of size that
// fits centered in area.
func fit(size, area image.Point) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 || area.X <= 0 || area.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := area.X, size.Y*area.X/size.X
	if h > area.Y {
		w, h = size.X*area.Y/size.Y, area.Y
	}
	w, h = max(w, 1), max(h, 1)
	x, y := (area.X-w)/2, (area.Y-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func rgb565LE(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(fb.FromRGBA(img.RGBAAt(x, y))))
		}
	}
	return out
}

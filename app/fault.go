package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"s3lcd/hal"
	"s3lcd/lcd/display"
	"s3lcd/lcd/fb"
	"s3lcd/lcd/text"
	"s3lcd/lcd/text/mono"

	"golang.org/x/image/font/basicfont"
)

// Fault logs err line by line and paints it black on white across the
// display, wrapping at the screen width. Lines that do not fit are dropped.
func Fault(d *display.Display, log hal.Logger, err error) {
	msg := fmt.Sprintf("s3lcd fault: %v", err)
	lines := strings.Split(msg, "\n")
	for _, line := range lines {
		if line != "" {
			hal.Logf(log, "%s", line)
		}
	}
	if d == nil || d.Buffer() == nil {
		return
	}

	f := mono.FromFace("fixed7x13", basicfont.Face7x13)
	d.Fill(fb.White)
	cols := d.Width() / f.Width
	if cols <= 0 {
		cols = 1
	}
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+f.Height > d.Height() {
				_ = d.Show()
				return
			}
			chunk, rest := takeRunes(line, cols)
			_, _ = d.Text(f, text.String(chunk), 0, y, fb.Black.Ink(), fb.Transparent, 255)
			y += f.Height
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Show()
}

// Splash shows a one-line status message during bring-up.
func Splash(d *display.Display, msg string) error {
	f := mono.FromFace("fixed7x13", basicfont.Face7x13)
	d.Fill(fb.Black)
	if _, err := d.Text(f, text.String("s3lcd"), 0, 0, fb.White.Ink(), fb.Transparent, 255); err != nil {
		return err
	}
	if _, err := d.Text(f, text.String(msg), 0, f.Height+3, fb.White.Ink(), fb.Transparent, 255); err != nil {
		return err
	}
	return d.Show()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}

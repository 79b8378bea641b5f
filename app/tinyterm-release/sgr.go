package tinyterm

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is an ANSI color index: 0-7 normal, 8-15 bright, 16-255 the xterm
// color cube and gray ramp.
type Color uint8

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// SGR parameters handled by the terminal.
const (
	SGRReset          = 0
	SGRBold           = 1
	SGRFgBlack        = 30
	SGRFgRed          = 31
	SGRFgGreen        = 32
	SGRFgYellow       = 33
	SGRFgBlue         = 34
	SGRFgMagenta      = 35
	SGRFgCyan         = 36
	SGRFgWhite        = 37
	SGRSetFgColor     = 38
	SGRDefaultFgColor = 39
	SGRBgBlack        = 40
	SGRBgRed          = 41
	SGRBgGreen        = 42
	SGRBgYellow       = 43
	SGRBgBlue         = 44
	SGRBgMagenta      = 45
	SGRBgCyan         = 46
	SGRBgWhite        = 47
	SGRSetBgColor     = 48
	SGRDefaultBgColor = 49
)

var basePalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0xCD, 0x00, 0x00, 0xFF},
	{0x00, 0xCD, 0x00, 0xFF},
	{0xCD, 0xCD, 0x00, 0xFF},
	{0x00, 0x00, 0xEE, 0xFF},
	{0xCD, 0x00, 0xCD, 0xFF},
	{0x00, 0xCD, 0xCD, 0xFF},
	{0xE5, 0xE5, 0xE5, 0xFF},
	{0x7F, 0x7F, 0x7F, 0xFF},
	{0xFF, 0x00, 0x00, 0xFF},
	{0x00, 0xFF, 0x00, 0xFF},
	{0xFF, 0xFF, 0x00, 0xFF},
	{0x5C, 0x5C, 0xFF, 0xFF},
	{0xFF, 0x00, 0xFF, 0xFF},
	{0x00, 0xFF, 0xFF, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
}

// RGBA returns the display color of c.
func (c Color) RGBA() color.RGBA {
	switch {
	case c < 16:
		return basePalette[c]
	case c < 232:
		i := int(c) - 16
		level := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		return color.RGBA{R: level(i / 36), G: level(i / 6 % 6), B: level(i % 6), A: 0xFF}
	default:
		v := uint8(8 + (int(c)-232)*10)
		return color.RGBA{R: v, G: v, B: v, A: 0xFF}
	}
}

type sgrAttrs struct {
	attrs byte
	fg    Color
	bg    Color
	fgcol color.RGBA
	bgcol color.RGBA
}

func (a *sgrAttrs) reset() {
	a.attrs = 0
	a.setFG(ColorWhite)
	a.setBG(ColorBlack)
}

func (a *sgrAttrs) setFG(c Color) {
	a.fg = c
	if a.attrs&SGRBold != 0 && c < 8 {
		c += 8
	}
	a.fgcol = c.RGBA()
}

func (a *sgrAttrs) setBG(c Color) {
	a.bg = c
	a.bgcol = c.RGBA()
}

// split breaks an SGR sequence into its parameters. Bold takes effect on the
// current foreground at once. Extended colors are only read in the 256-color
// form ESC[38;5;Nm; shorter forms come back as an unhandled attribute.
func (a *sgrAttrs) split(s string) []string {
	params := strings.Split(s, ";")
	switch params[0] {
	case strconv.Itoa(SGRBold):
		a.attrs |= SGRBold
		a.setFG(a.fg)
	case strconv.Itoa(SGRSetFgColor), strconv.Itoa(SGRSetBgColor):
		if len(params) < 3 {
			return []string{"-1"}
		}
	}
	return params
}

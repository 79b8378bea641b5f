package hal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
)

// MIPI DCS commands understood by Panel and sent by SPIPanel.
const (
	CmdSWRESET = 0x01
	CmdSLPOUT  = 0x11
	CmdINVOFF  = 0x20
	CmdINVON   = 0x21
	CmdDISPOFF = 0x28
	CmdDISPON  = 0x29
	CmdCASET   = 0x2A
	CmdRASET   = 0x2B
	CmdRAMWR   = 0x2C
	CmdVSCRDEF = 0x33
	CmdMADCTL  = 0x36
	CmdVSCSAD  = 0x37
	CmdCOLMOD  = 0x3A
)

// MADCTL bits.
const (
	MADCTLMY  = 0x80
	MADCTLMX  = 0x40
	MADCTLMV  = 0x20
	MADCTLBGR = 0x08
)

// Command is a recorded controller command.
type Command struct {
	Cmd    uint8
	Params []byte
}

// Transfer is a recorded pixel band.
type Transfer struct {
	Row, Rows, Width uint16
	Bytes            int
}

// Panel is an in-memory panel controller. It keeps its own RGB565 memory,
// applies address swapping, mirroring and gaps the way a MIPI-DCS
// controller does, and records traffic for inspection.
type Panel struct {
	// BigEndian selects the wire byte order of TransferRows data.
	BigEndian bool
	// Async completes transfers from a separate goroutine.
	Async bool
	// Hold keeps completions back until Release is called.
	Hold bool

	mu      sync.Mutex
	cols    int
	rows    int
	mem     []uint16
	swapXY  bool
	mirrorX bool
	mirrorY bool
	gapX    int
	gapY    int
	invert  bool
	on      bool
	resets  int
	tfa     int
	vsa     int
	vssa    int
	cmds    []Command
	xfers   []Transfer
	closed  bool
	failOn  int
	held    []func()
}

// NewPanel returns a panel with cols x rows of controller memory.
func NewPanel(cols, rows int) *Panel {
	return &Panel{
		cols: cols,
		rows: rows,
		mem:  make([]uint16, cols*rows),
	}
}

var errPanelClosed = errors.New("panel: closed")

// FailTransfer makes the n-th following TransferRows call (1-based) fail.
func (p *Panel) FailTransfer(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failOn = n
}

func (p *Panel) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPanelClosed
	}
	p.resets++
	p.swapXY, p.mirrorX, p.mirrorY = false, false, false
	p.invert = false
	p.on = false
	p.tfa, p.vsa, p.vssa = 0, 0, 0
	return nil
}

func (p *Panel) SendCommand(cmd uint8, params []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPanelClosed
	}
	p.cmds = append(p.cmds, Command{Cmd: cmd, Params: append([]byte(nil), params...)})

	switch cmd {
	case CmdSWRESET:
		p.on = false
	case CmdDISPON:
		p.on = true
	case CmdDISPOFF:
		p.on = false
	case CmdINVON:
		p.invert = true
	case CmdINVOFF:
		p.invert = false
	case CmdMADCTL:
		if len(params) > 0 {
			p.swapXY = params[0]&MADCTLMV != 0
			p.mirrorX = params[0]&MADCTLMX != 0
			p.mirrorY = params[0]&MADCTLMY != 0
		}
	case CmdVSCRDEF:
		if len(params) >= 6 {
			p.tfa = int(binary.BigEndian.Uint16(params[0:]))
			p.vsa = int(binary.BigEndian.Uint16(params[2:]))
		}
	case CmdVSCSAD:
		if len(params) >= 2 {
			p.vssa = int(binary.BigEndian.Uint16(params))
		}
	}
	return nil
}

func (p *Panel) SetRotation(swapXY, mirrorX, mirrorY bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPanelClosed
	}
	p.swapXY, p.mirrorX, p.mirrorY = swapXY, mirrorX, mirrorY
	return nil
}

func (p *Panel) SetGap(x, y uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPanelClosed
	}
	p.gapX, p.gapY = int(x), int(y)
	return nil
}

func (p *Panel) SetInversion(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPanelClosed
	}
	p.invert = on
	return nil
}

func (p *Panel) TransferRows(row, rows, width uint16, pixels []byte, done func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errPanelClosed
	}
	if p.failOn > 0 {
		p.failOn--
		if p.failOn == 0 {
			p.mu.Unlock()
			return fmt.Errorf("panel: transfer at row %d failed", row)
		}
	}
	n := int(rows) * int(width)
	if len(pixels) < n*2 {
		p.mu.Unlock()
		return fmt.Errorf("panel: short transfer: %d bytes for %d pixels", len(pixels), n)
	}
	p.xfers = append(p.xfers, Transfer{Row: row, Rows: rows, Width: width, Bytes: n * 2})

	order := binary.ByteOrder(binary.LittleEndian)
	if p.BigEndian {
		order = binary.BigEndian
	}
	for i := 0; i < n; i++ {
		x := i % int(width)
		y := int(row) + i/int(width)
		p.store(x, y, order.Uint16(pixels[i*2:]))
	}
	async := p.Async
	if p.Hold && done != nil {
		p.held = append(p.held, done)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	if done == nil {
		return nil
	}
	if async {
		go done()
	} else {
		done()
	}
	return nil
}

// Release runs the completions kept back by Hold and returns how many ran.
func (p *Panel) Release() int {
	p.mu.Lock()
	held := p.held
	p.held = nil
	p.mu.Unlock()
	for _, done := range held {
		done()
	}
	return len(held)
}

func (p *Panel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// store maps a logical window coordinate to controller memory.
func (p *Panel) store(x, y int, c uint16) {
	col, row := x+p.gapX, y+p.gapY
	if p.swapXY {
		col, row = row, col
	}
	if p.mirrorX {
		col = p.cols - 1 - col
	}
	if p.mirrorY {
		row = p.rows - 1 - row
	}
	if col < 0 || col >= p.cols || row < 0 || row >= p.rows {
		return
	}
	p.mem[row*p.cols+col] = c
}

// Size returns the controller memory size.
func (p *Panel) Size() (cols, rows int) { return p.cols, p.rows }

// At returns the RGB565 value stored at a controller memory address.
func (p *Panel) At(col, row int) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if col < 0 || col >= p.cols || row < 0 || row >= p.rows {
		return 0
	}
	return p.mem[row*p.cols+col]
}

// ClearRGB fills controller memory with a color.
func (p *Panel) ClearRGB(r, g, b uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	for i := range p.mem {
		p.mem[i] = c
	}
}

// Commands returns a copy of the recorded command log.
func (p *Panel) Commands() []Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Command(nil), p.cmds...)
}

// Transfers returns a copy of the recorded transfer log.
func (p *Panel) Transfers() []Transfer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Transfer(nil), p.xfers...)
}

// ResetLog clears the command and transfer logs.
func (p *Panel) ResetLog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cmds = nil
	p.xfers = nil
}

// State reports the controller flags.
func (p *Panel) State() (swapXY, mirrorX, mirrorY, inverted, on bool, gapX, gapY int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swapXY, p.mirrorX, p.mirrorY, p.invert, p.on, p.gapX, p.gapY
}

// Resets returns how many hardware resets were issued.
func (p *Panel) Resets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resets
}

// Image renders what the glass would show: vertical scrolling and
// inversion applied.
func (p *Panel) Image() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, p.cols, p.rows))
	for y := 0; y < p.rows; y++ {
		src := p.scrolledRow(y)
		for x := 0; x < p.cols; x++ {
			c := p.mem[src*p.cols+x]
			if p.invert {
				c = ^c
			}
			img.SetRGBA(x, y, expand565(c))
		}
	}
	return img
}

func (p *Panel) scrolledRow(y int) int {
	if p.vsa <= 0 || y < p.tfa || y >= p.tfa+p.vsa || p.tfa+p.vsa > p.rows {
		return y
	}
	off := (p.vssa - p.tfa + y - p.tfa) % p.vsa
	if off < 0 {
		off += p.vsa
	}
	return p.tfa + off
}

func expand565(c uint16) color.RGBA {
	r, g, b := c>>11, c>>5&0x3F, c&0x1F
	return color.RGBA{R: uint8(r * 255 / 31), G: uint8(g * 255 / 63), B: uint8(b * 255 / 31), A: 0xFF}
}

// Package display ties a framebuffer to a panel transport. It owns the
// controller bring-up sequence, orientation, hardware vertical scrolling and
// the banded flush that streams the framebuffer through a staging buffer.
package display

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"s3lcd/hal"
	"s3lcd/lcd/fb"

	"tinygo.org/x/drivers/pixel"
)

var (
	ErrConfig          = errors.New("display: invalid configuration")
	ErrRotations       = errors.New("display: invalid rotation table")
	ErrTransferTimeout = errors.New("display: transfer timed out")
	ErrClosed          = errors.New("display: deinitialized")
)

const (
	DefaultDMARows         = 16
	DefaultTransferTimeout = time.Second

	// initDelay follows every init command.
	initDelay = 10 * time.Millisecond
	maxAxis   = 1<<15 - 1
)

// InitCommand is one controller command: Data[0] is the command byte, the
// rest are its parameters. Delay is waited after the command.
type InitCommand struct {
	Data  []byte
	Delay time.Duration
}

// Config describes the panel. Zero values select defaults.
type Config struct {
	Width, Height int

	// Rotations overrides the built-in table for Width x Height.
	Rotations []Rotation
	Rotation  int

	// DMARows is the height of one flush band. Defaults to 16.
	DMARows int

	Options fb.Options

	// Inversion selects display inversion after init. nil means on.
	Inversion *bool

	// SwapBytes sends pixels big-endian on the wire.
	SwapBytes bool

	// CustomInit replaces the default bring-up sequence.
	CustomInit []InitCommand

	Logger hal.Logger

	// TransferTimeout bounds the wait for one band. Defaults to 1s.
	TransferTimeout time.Duration

	// Sleep is used for init delays. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

type Display struct {
	t       hal.Transport
	log     hal.Logger
	sleep   func(time.Duration)
	timeout time.Duration

	rots     []Rotation
	rotation int
	invert   bool
	swap     bool
	init     []InitCommand
	dmaRows  int

	buf   *fb.Buffer
	stage pixel.Image[pixel.RGB565BE]
	done  chan struct{}
	// pending is set while a timed out band may still be reading stage.
	pending bool
}

// New validates cfg and allocates the framebuffer and the staging buffer.
// The panel is not touched until Init.
func New(t hal.Transport, cfg Config) (*Display, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transport", ErrConfig)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxAxis || cfg.Height > maxAxis {
		return nil, fmt.Errorf("%w: size %dx%d", ErrConfig, cfg.Width, cfg.Height)
	}
	if cfg.DMARows == 0 {
		cfg.DMARows = DefaultDMARows
	}
	if cfg.DMARows < 0 || cfg.DMARows > maxAxis {
		return nil, fmt.Errorf("%w: dma rows %d", ErrConfig, cfg.DMARows)
	}
	rots := cfg.Rotations
	if rots == nil {
		rots = Rotations(cfg.Width, cfg.Height)
	} else if !validRotations(rots) {
		return nil, ErrRotations
	} else {
		rots = append([]Rotation(nil), rots...)
	}
	for i, c := range cfg.CustomInit {
		if len(c.Data) == 0 {
			return nil, fmt.Errorf("%w: empty init command %d", ErrConfig, i)
		}
	}

	longest := max(cfg.Width, cfg.Height)
	for _, r := range rots {
		longest = max(longest, r.Width, r.Height)
	}
	if longest > maxAxis {
		return nil, fmt.Errorf("%w: rotation wider than %d", ErrConfig, maxAxis)
	}

	d := &Display{
		t:        t,
		log:      cfg.Logger,
		sleep:    cfg.Sleep,
		timeout:  cfg.TransferTimeout,
		rots:     rots,
		rotation: mod(cfg.Rotation, len(rots)),
		invert:   cfg.Inversion == nil || *cfg.Inversion,
		swap:     cfg.SwapBytes,
		init:     cfg.CustomInit,
		dmaRows:  cfg.DMARows,
		stage:    pixel.NewImage[pixel.RGB565BE](longest, cfg.DMARows),
		done:     make(chan struct{}, 1),
	}
	if d.log == nil {
		d.log = hal.NopLogger{}
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	if d.timeout <= 0 {
		d.timeout = DefaultTransferTimeout
	}
	r := d.rots[d.rotation]
	d.buf = fb.New(r.Width, r.Height)
	d.buf.SetOptions(cfg.Options)
	return d, nil
}

func mod(n, m int) int {
	n %= m
	if n < 0 {
		n += m
	}
	return n
}

// Init resets the controller, runs the init sequence, applies inversion and
// rotation and clears the framebuffer.
func (d *Display) Init() error {
	if d.buf == nil {
		return ErrClosed
	}
	if err := d.t.Reset(); err != nil {
		return err
	}
	if len(d.init) > 0 {
		for _, c := range d.init {
			if err := d.t.SendCommand(c.Data[0], c.Data[1:]); err != nil {
				return err
			}
			d.sleep(initDelay)
			if c.Delay > 0 {
				d.sleep(c.Delay)
			}
		}
	} else if err := d.defaultInit(); err != nil {
		return err
	}
	if err := d.t.SetInversion(d.invert); err != nil {
		return err
	}
	if err := d.applyRotation(); err != nil {
		return err
	}
	d.buf.Clear(0)
	hal.Logf(d.log, "s3lcd: init %dx%d rotation=%d dma_rows=%d", d.buf.Width(), d.buf.Height(), d.rotation, d.dmaRows)
	return nil
}

func (d *Display) defaultInit() error {
	seq := []InitCommand{
		{Data: []byte{hal.CmdSWRESET}, Delay: 150 * time.Millisecond},
		{Data: []byte{hal.CmdSLPOUT}, Delay: 120 * time.Millisecond},
		{Data: []byte{hal.CmdCOLMOD, 0x55}},
		{Data: []byte{hal.CmdDISPON}, Delay: 20 * time.Millisecond},
	}
	for _, c := range seq {
		if err := d.t.SendCommand(c.Data[0], c.Data[1:]); err != nil {
			return err
		}
		if c.Delay > 0 {
			d.sleep(c.Delay)
		}
	}
	return nil
}

// Reset issues a hardware or software reset.
func (d *Display) Reset() error {
	return d.t.Reset()
}

func (d *Display) SetInversion(on bool) error {
	if err := d.t.SetInversion(on); err != nil {
		return err
	}
	d.invert = on
	return nil
}

// SetRotation selects entry n of the rotation table, modulo its length,
// and resizes the framebuffer to match. Buffer contents are kept only when
// the size is unchanged.
func (d *Display) SetRotation(n int) error {
	if d.buf == nil {
		return ErrClosed
	}
	d.rotation = mod(n, len(d.rots))
	if err := d.applyRotation(); err != nil {
		return err
	}
	hal.Logf(d.log, "s3lcd: rotation=%d %dx%d", d.rotation, d.buf.Width(), d.buf.Height())
	return nil
}

func (d *Display) applyRotation() error {
	r := d.rots[d.rotation]
	if err := d.t.SetRotation(r.SwapXY, r.MirrorX, r.MirrorY); err != nil {
		return err
	}
	if err := d.t.SetGap(uint16(r.XGap), uint16(r.YGap)); err != nil {
		return err
	}
	if r.Width != d.buf.Width() || r.Height != d.buf.Height() {
		d.buf.Resize(r.Width, r.Height)
	}
	return nil
}

func (d *Display) Rotation() int { return d.rotation }

func (d *Display) Width() int {
	if d.buf == nil {
		return 0
	}
	return d.buf.Width()
}

func (d *Display) Height() int {
	if d.buf == nil {
		return 0
	}
	return d.buf.Height()
}

// Buffer returns the framebuffer, or nil after Deinit.
func (d *Display) Buffer() *fb.Buffer { return d.buf }

// VScrollDef defines the top fixed, scrolling and bottom fixed areas.
func (d *Display) VScrollDef(tfa, vsa, bfa uint16) error {
	p := make([]byte, 6)
	binary.BigEndian.PutUint16(p[0:], tfa)
	binary.BigEndian.PutUint16(p[2:], vsa)
	binary.BigEndian.PutUint16(p[4:], bfa)
	return d.t.SendCommand(hal.CmdVSCRDEF, p)
}

// VScrollStart sets the first line shown in the scrolling area.
func (d *Display) VScrollStart(vssa uint16) error {
	return d.t.SendCommand(hal.CmdVSCSAD, binary.BigEndian.AppendUint16(nil, vssa))
}

// Show streams the framebuffer to the panel in bands of DMARows rows,
// followed by one shorter band when the height is not a multiple.
func (d *Display) Show() error {
	if d.buf == nil {
		return ErrClosed
	}
	h, r := d.buf.Height(), d.dmaRows
	for y := 0; y < h-r+1; y += r {
		if err := d.band(y, r); err != nil {
			return d.flushFailed(y, err)
		}
	}
	if rem := h % r; rem != 0 {
		if err := d.band(h-rem, rem); err != nil {
			return d.flushFailed(h-rem, err)
		}
	}
	return nil
}

// Flush is Show.
func (d *Display) Flush() error { return d.Show() }

func (d *Display) flushFailed(row int, err error) error {
	hal.Logf(d.log, "s3lcd: flush at row %d: %v", row, err)
	return err
}

func (d *Display) band(row, rows int) error {
	if err := d.settle(); err != nil {
		return err
	}
	w := d.buf.Width()
	raw := d.stage.Rescale(w, rows).RawBuffer()
	src := d.buf.Pix()[row*w : (row+rows)*w]
	order := binary.ByteOrder(binary.LittleEndian)
	if d.swap {
		order = binary.BigEndian
	}
	for i, v := range src {
		order.PutUint16(raw[i*2:], v)
	}

	if err := d.t.TransferRows(uint16(row), uint16(rows), uint16(w), raw, d.complete); err != nil {
		return err
	}
	if err := d.wait(); err != nil {
		d.pending = true
		return err
	}
	return nil
}

// settle waits for the completion of a band that timed out earlier. The
// staging buffer is not touched until it arrives.
func (d *Display) settle() error {
	if !d.pending {
		return nil
	}
	if err := d.wait(); err != nil {
		return err
	}
	d.pending = false
	return nil
}

func (d *Display) wait() error {
	timer := time.NewTimer(d.timeout)
	defer timer.Stop()
	select {
	case <-d.done:
		return nil
	case <-timer.C:
		return ErrTransferTimeout
	}
}

func (d *Display) complete() {
	select {
	case d.done <- struct{}{}:
	default:
	}
}

// staging lends the raw staging buffer to a decoder. It must not be held
// across a flush.
func (d *Display) staging() ([]byte, error) {
	if err := d.settle(); err != nil {
		return nil, err
	}
	return d.stage.RawBuffer(), nil
}

// Deinit closes the transport and releases the buffers. The display cannot
// be used afterwards.
func (d *Display) Deinit() error {
	if d.buf == nil {
		return nil
	}
	err := d.t.Close()
	d.buf.Release()
	d.buf = nil
	d.stage = pixel.Image[pixel.RGB565BE]{}
	d.dmaRows = 0
	d.pending = false
	hal.Logf(d.log, "s3lcd: deinit")
	return err
}

func (d *Display) String() string {
	return fmt.Sprintf("<s3lcd width=%d height=%d rotation=%d>", d.Width(), d.Height(), d.rotation)
}

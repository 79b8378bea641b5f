package hal

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// SPIPanelConfig wires a MIPI-DCS panel on a 4-wire SPI bus.
type SPIPanelConfig struct {
	CS  Pin
	DC  Pin
	RST Pin // optional; software reset is used when nil

	// BGR sets the MADCTL colour order bit.
	BGR bool
	// ChunkBytes bounds a single bus write. Defaults to 4096.
	ChunkBytes int
	// Sleep is used for reset timing. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// SPIPanel drives an ST7789/ILI9488-style controller over SPI.
type SPIPanel struct {
	bus    drivers.SPI
	cs     Pin
	dc     Pin
	rst    Pin
	madctl byte
	gapX   uint16
	gapY   uint16
	chunk  int
	sleep  func(time.Duration)
	closed bool
}

var errSPIClosed = errors.New("spi panel: closed")

// NewSPIPanel returns a transport for bus. CS and DC are required.
func NewSPIPanel(bus drivers.SPI, cfg SPIPanelConfig) (*SPIPanel, error) {
	if bus == nil || cfg.CS == nil || cfg.DC == nil {
		return nil, errors.New("spi panel: bus, cs and dc are required")
	}
	if cfg.ChunkBytes <= 0 {
		cfg.ChunkBytes = 4096
	}
	cfg.ChunkBytes &^= 1
	if cfg.ChunkBytes < 2 {
		return nil, errors.New("spi panel: chunk too small")
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	d := &SPIPanel{
		bus:   bus,
		cs:    cfg.CS,
		dc:    cfg.DC,
		rst:   cfg.RST,
		chunk: cfg.ChunkBytes,
		sleep: cfg.Sleep,
	}
	if cfg.BGR {
		d.madctl = MADCTLBGR
	}
	d.cs.High()
	d.dc.High()
	if d.rst != nil {
		d.rst.High()
	}
	return d, nil
}

func (d *SPIPanel) Reset() error {
	if d.closed {
		return errSPIClosed
	}
	if d.rst == nil {
		if err := d.cmd(CmdSWRESET); err != nil {
			return err
		}
		d.sleep(150 * time.Millisecond)
		return nil
	}
	d.rst.Low()
	d.sleep(64 * time.Millisecond)
	d.rst.High()
	d.sleep(140 * time.Millisecond)
	return nil
}

func (d *SPIPanel) SendCommand(cmd uint8, params []byte) error {
	if d.closed {
		return errSPIClosed
	}
	return d.cmd(cmd, params...)
}

func (d *SPIPanel) SetRotation(swapXY, mirrorX, mirrorY bool) error {
	if d.closed {
		return errSPIClosed
	}
	m := d.madctl & MADCTLBGR
	if swapXY {
		m |= MADCTLMV
	}
	if mirrorX {
		m |= MADCTLMX
	}
	if mirrorY {
		m |= MADCTLMY
	}
	d.madctl = m
	return d.cmd(CmdMADCTL, m)
}

func (d *SPIPanel) SetGap(x, y uint16) error {
	if d.closed {
		return errSPIClosed
	}
	d.gapX, d.gapY = x, y
	return nil
}

func (d *SPIPanel) SetInversion(on bool) error {
	if d.closed {
		return errSPIClosed
	}
	if on {
		return d.cmd(CmdINVON)
	}
	return d.cmd(CmdINVOFF)
}

// TransferRows writes the band synchronously and then signals done.
func (d *SPIPanel) TransferRows(row, rows, width uint16, pixels []byte, done func()) error {
	if d.closed {
		return errSPIClosed
	}
	n := int(rows) * int(width) * 2
	if rows == 0 || width == 0 || len(pixels) < n {
		return errors.New("spi panel: invalid band")
	}

	x0 := d.gapX
	y0 := row + d.gapY
	if err := d.setWindow(x0, y0, x0+width-1, y0+rows-1); err != nil {
		return err
	}

	d.cs.Low()
	d.dc.High()
	for off := 0; off < n; off += d.chunk {
		end := off + d.chunk
		if end > n {
			end = n
		}
		if err := d.bus.Tx(pixels[off:end], nil); err != nil {
			d.cs.High()
			return err
		}
	}
	d.cs.High()

	if done != nil {
		done()
	}
	return nil
}

func (d *SPIPanel) Close() error {
	if d.closed {
		return nil
	}
	err := d.cmd(CmdDISPOFF)
	d.closed = true
	return err
}

func (d *SPIPanel) cmd(cmd byte, data ...byte) error {
	d.cs.Low()
	d.dc.Low()
	err := d.bus.Tx([]byte{cmd}, nil)
	d.dc.High()
	if err == nil && len(data) > 0 {
		err = d.bus.Tx(data, nil)
	}
	d.cs.High()
	return err
}

func (d *SPIPanel) setWindow(x0, y0, x1, y1 uint16) error {
	if err := d.cmd(
		CmdCASET,
		byte(x0>>8), byte(x0),
		byte(x1>>8), byte(x1),
	); err != nil {
		return err
	}
	if err := d.cmd(
		CmdRASET,
		byte(y0>>8), byte(y0),
		byte(y1>>8), byte(y1),
	); err != nil {
		return err
	}
	return d.cmd(CmdRAMWR)
}

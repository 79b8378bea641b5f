//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"fmt"
	"machine"
	"os"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"
)

// Board bundles the PicoCalc peripherals used by the renderer.
type Board struct {
	Logger    Logger
	Transport Transport
	Storage   Storage // nil when no card is mounted
}

// NewBoard configures the PicoCalc carrier: UART0 logging, the ILI9488 on
// SPI1 and the SD card on SPI0.
func NewBoard() (*Board, error) {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	b := &Board{Logger: &uartLogger{uart: uart}}

	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})
	for _, p := range []machine.Pin{machine.GP13, machine.GP14, machine.GP15} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	t, err := NewSPIPanel(machine.SPI1, SPIPanelConfig{
		CS:  machine.GP13,
		DC:  machine.GP14,
		RST: machine.GP15,
		BGR: true,
	})
	if err != nil {
		return nil, err
	}
	b.Transport = t

	if st, err := mountSD(); err == nil {
		b.Storage = st
	} else {
		Logf(b.Logger, "sd: %v", err)
	}
	return b, nil
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type sdStorage struct {
	sd  *sdcard.Device
	fat *fatfs.FATFS
}

func mountSD() (*sdStorage, error) {
	sd := sdcard.New(machine.SPI0, machine.GP18, machine.GP19, machine.GP16, machine.GP17)
	if err := sd.Configure(); err != nil {
		return nil, err
	}
	fat := fatfs.New(&sd).Configure(&fatfs.Config{SectorSize: fatfs.SectorSize})
	if err := fat.Mount(); err != nil {
		// Removable media is never formatted here.
		return nil, err
	}
	return &sdStorage{sd: &sd, fat: fat}, nil
}

func (s *sdStorage) Open(name string, mode OpenMode) (File, error) {
	var flags int
	switch mode {
	case ModeRead:
		flags = os.O_RDONLY
	case ModeCreate:
		flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return nil, fmt.Errorf("sd open %s: %w", name, ErrBadMode)
	}
	f, err := s.fat.OpenFile(name, flags)
	if err != nil {
		return nil, mapFatErr("open "+name, err)
	}
	return f, nil
}

func mapFatErr(op string, err error) error {
	var fr fatfs.FileResult
	if errors.As(err, &fr) {
		switch fr {
		case fatfs.FileResultNoFile, fatfs.FileResultNoPath:
			return fmt.Errorf("sd %s: %w", op, ErrNotFound)
		case fatfs.FileResultDenied, fatfs.FileResultLocked:
			return fmt.Errorf("sd %s: %w", op, ErrReadOnly)
		case fatfs.FileResultInvalidName, fatfs.FileResultInvalidParameter:
			return fmt.Errorf("sd %s: %w", op, ErrBadPath)
		}
	}
	return fmt.Errorf("sd %s: %v", op, err)
}

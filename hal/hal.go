package hal

import (
	"errors"
	"io"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Pin is a minimal output pin abstraction.
type Pin interface {
	High()
	Low()
}

// Transport is the link to a panel controller.
//
// TransferRows starts sending a band of RGB565 pixels covering rows
// [row, row+rows) of a panel width pixels wide. It may return before the
// transfer finishes; done is called exactly once when the band has been
// consumed and pixels may be reused. Callers must not issue another
// transfer until done has run.
type Transport interface {
	Reset() error
	SendCommand(cmd uint8, params []byte) error
	SetRotation(swapXY, mirrorX, mirrorY bool) error
	SetGap(x, y uint16) error
	SetInversion(on bool) error
	TransferRows(row, rows, width uint16, pixels []byte, done func()) error
	Close() error
}

// OpenMode selects how Storage.Open treats the named file.
type OpenMode uint8

const (
	// ModeRead opens an existing file read-only.
	ModeRead OpenMode = iota
	// ModeCreate creates or truncates a file for writing.
	ModeCreate
)

func (m OpenMode) String() string {
	switch m {
	case ModeRead:
		return "rb"
	case ModeCreate:
		return "w+b"
	default:
		return "?"
	}
}

// File is an open storage handle.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
}

// Storage opens named files for the image codecs.
type Storage interface {
	Open(name string, mode OpenMode) (File, error)
}

var (
	ErrNotFound   = errors.New("storage: not found")
	ErrBadPath    = errors.New("storage: invalid path")
	ErrReadOnly   = errors.New("storage: read only")
	ErrBadMode    = errors.New("storage: invalid mode")
	ErrFileClosed = errors.New("storage: file closed")
)

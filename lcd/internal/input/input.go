// Package input is the byte source shared by the image codecs: an
// in-memory buffer or a named file on a hal.Storage.
package input

import (
	"bytes"
	"errors"
	"io"

	"s3lcd/hal"
)

var ErrEmpty = errors.New("input: no source")

type Input struct {
	data  []byte
	store hal.Storage
	name  string
}

func Bytes(b []byte) Input { return Input{data: b} }

func File(s hal.Storage, name string) Input { return Input{store: s, name: name} }

// Name describes the source for error messages.
func (in Input) Name() string {
	if in.store != nil {
		return in.name
	}
	return "<bytes>"
}

// Open returns a reader over the source and a close func that must be
// called on every path.
func (in Input) Open() (io.Reader, func() error, error) {
	if in.store != nil {
		f, err := in.store.Open(in.name, hal.ModeRead)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
	if in.data == nil {
		return nil, nil, ErrEmpty
	}
	return bytes.NewReader(in.data), func() error { return nil }, nil
}

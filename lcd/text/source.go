// Package text holds what the text engines share: the Source type they
// draw from.
package text

import (
	"errors"
	"unicode/utf8"
)

// ErrUnsupportedSource is returned for a Source with no kind.
var ErrUnsupportedSource = errors.New("text: unsupported source")

// Kind tags the variant held by a Source.
type Kind uint8

const (
	KindNone Kind = iota
	KindCodePoint
	KindText
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindCodePoint:
		return "codepoint"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	default:
		return "none"
	}
}

// Source is a single code point, a string or raw bytes.
type Source struct {
	kind Kind
	r    rune
	s    string
	b    []byte
}

func Rune(r rune) Source    { return Source{kind: KindCodePoint, r: r} }
func String(s string) Source { return Source{kind: KindText, s: s} }
func Raw(b []byte) Source    { return Source{kind: KindBytes, b: b} }

func (s Source) Kind() Kind { return s.kind }

// Bytes returns the source as 8-bit character codes. A code point becomes
// the single byte r & 0xff.
func (s Source) Bytes() ([]byte, error) {
	switch s.kind {
	case KindCodePoint:
		return []byte{byte(s.r & 0xff)}, nil
	case KindText:
		return []byte(s.s), nil
	case KindBytes:
		return s.b, nil
	default:
		return nil, ErrUnsupportedSource
	}
}

// Runes returns the source decoded as UTF-8. A code point becomes the
// single rune r & 0xff.
func (s Source) Runes() ([]rune, error) {
	switch s.kind {
	case KindCodePoint:
		return []rune{s.r & 0xff}, nil
	case KindText:
		return []rune(s.s), nil
	case KindBytes:
		out := make([]rune, 0, utf8.RuneCount(s.b))
		for b := s.b; len(b) > 0; {
			r, n := utf8.DecodeRune(b)
			out = append(out, r)
			b = b[n:]
		}
		return out, nil
	default:
		return nil, ErrUnsupportedSource
	}
}

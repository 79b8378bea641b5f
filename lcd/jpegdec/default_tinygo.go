//go:build tinygo

package jpegdec

func newDefaultDecoder() BlockDecoder { return &TinyDecoder{} }

//go:build !tinygo

package pngcodec

func newDefaultDecoder() Decoder { return StdDecoder{} }

package asset

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestMap_Lookup(t *testing.T) {
	m := Map{"a": []byte{1}, "b": nil}
	if b, err := m.Lookup("a"); err != nil || len(b) != 1 {
		t.Fatalf("Lookup(a) = %v, %v", b, err)
	}
	if _, err := m.Lookup("b"); err != nil {
		t.Fatalf("Lookup(b): %v", err)
	}
	if _, err := m.Lookup("c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup(c) err=%v", err)
	}
	if got := m.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Names=%v", got)
	}
}

func TestFS_Lookup(t *testing.T) {
	p := FS{FS: fstest.MapFS{
		"assets/logo.bin": {Data: []byte("xyz")},
	}, Dir: "assets"}
	b, err := p.Lookup("logo.bin")
	if err != nil || string(b) != "xyz" {
		t.Fatalf("Lookup = %q, %v", b, err)
	}
	if _, err := p.Lookup("missing.bin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err=%v", err)
	}
	if _, err := (FS{FS: p.FS}).Lookup("../x"); !errors.Is(err, fs.ErrInvalid) {
		t.Fatalf("escape err=%v", err)
	}
}

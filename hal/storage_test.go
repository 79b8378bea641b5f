package hal

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDirStorage_RoundTrip(t *testing.T) {
	s := DirStorage{Root: t.TempDir()}
	f, err := s.Open("img.bin", ModeCreate)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("xxxx")); err != nil {
		t.Fatal(err)
	}
	f.Seek(1, io.SeekStart)
	f.Write([]byte("ab"))
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(s.Root, "img.bin"))
	if err != nil || string(b) != "xabx" {
		t.Fatalf("file %q err %v", b, err)
	}

	r, err := s.Open("/img.bin", ModeRead)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, _ := io.ReadAll(r)
	if string(got) != "xabx" {
		t.Fatalf("read %q", got)
	}
}

func TestDirStorage_Errors(t *testing.T) {
	s := DirStorage{Root: t.TempDir()}
	for _, name := range []string{"", "../escape", "a/../../b", "nul\x00"} {
		if _, err := s.Open(name, ModeRead); !errors.Is(err, ErrBadPath) {
			t.Errorf("%q: %v", name, err)
		}
	}
	if _, err := s.Open("missing.png", ModeRead); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: %v", err)
	}
	if _, err := s.Open("x", OpenMode(7)); !errors.Is(err, ErrBadMode) {
		t.Errorf("mode: %v", err)
	}
}

func TestMemStorage(t *testing.T) {
	s := NewMemStorage()
	if _, err := s.Open("a", ModeRead); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}
	w, err := s.Open("a", ModeCreate)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("hello"))
	w.Seek(-1, io.SeekEnd)
	w.Write([]byte("!"))
	if s.OpenHandles() != 1 {
		t.Fatalf("handles %d", s.OpenHandles())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); !errors.Is(err, ErrFileClosed) {
		t.Fatalf("double close: %v", err)
	}
	if b, ok := s.Get("a"); !ok || string(b) != "hell!" {
		t.Fatalf("stored %q", b)
	}

	r, _ := s.Open("a", ModeRead)
	if _, err := r.Write([]byte("x")); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("write on reader: %v", err)
	}
	r.Seek(1, io.SeekStart)
	b, _ := io.ReadAll(r)
	r.Close()
	if string(b) != "ell!" || s.OpenHandles() != 0 {
		t.Fatalf("read %q handles %d", b, s.OpenHandles())
	}
	if ModeCreate.String() != "w+b" || ModeRead.String() != "rb" {
		t.Fatalf("mode strings")
	}
}

package hal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// DirStorage serves files below an OS directory.
type DirStorage struct {
	Root string
}

func (s DirStorage) Open(name string, mode OpenMode) (File, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	var f *os.File
	switch mode {
	case ModeRead:
		f, err = os.Open(p)
	case ModeCreate:
		f, err = os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	default:
		return nil, fmt.Errorf("storage open %s: %w", name, ErrBadMode)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage open %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("storage open %s: %w", name, err)
	}
	return f, nil
}

func (s DirStorage) resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", ErrBadPath
	}
	slashed := filepath.ToSlash(name)
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", ErrBadPath
		}
	}
	root := s.Root
	if root == "" {
		root = "."
	}
	return filepath.Join(root, filepath.FromSlash(path.Clean("/"+slashed))), nil
}

// MemStorage is an in-memory Storage.
type MemStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	open  int
}

func NewMemStorage() *MemStorage {
	return &MemStorage{files: make(map[string][]byte)}
}

// Put stores a file.
func (s *MemStorage) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
}

// Get returns a copy of a stored file.
func (s *MemStorage) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// OpenHandles reports how many files are open.
func (s *MemStorage) OpenHandles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *MemStorage) Open(name string, mode OpenMode) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &memFile{s: s, name: name, mode: mode}
	switch mode {
	case ModeRead:
		b, ok := s.files[name]
		if !ok {
			return nil, fmt.Errorf("storage open %s: %w", name, ErrNotFound)
		}
		f.r = bytes.NewReader(b)
	case ModeCreate:
		s.files[name] = nil
	default:
		return nil, fmt.Errorf("storage open %s: %w", name, ErrBadMode)
	}
	s.open++
	return f, nil
}

type memFile struct {
	s      *MemStorage
	name   string
	mode   OpenMode
	r      *bytes.Reader
	buf    []byte
	off    int64
	closed bool
}

func (f *memFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrFileClosed
	}
	if f.r == nil {
		return 0, io.EOF
	}
	return f.r.Read(p)
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrFileClosed
	}
	if f.mode != ModeCreate {
		return 0, ErrReadOnly
	}
	end := f.off + int64(len(p))
	if end > int64(len(f.buf)) {
		f.buf = append(f.buf, make([]byte, end-int64(len(f.buf)))...)
	}
	copy(f.buf[f.off:], p)
	f.off = end
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, ErrFileClosed
	}
	if f.r != nil {
		return f.r.Seek(offset, whence)
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.off + offset
	case io.SeekEnd:
		abs = int64(len(f.buf)) + offset
	default:
		return 0, errors.New("storage: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("storage: negative position")
	}
	f.off = abs
	return abs, nil
}

func (f *memFile) Close() error {
	if f.closed {
		return ErrFileClosed
	}
	f.closed = true
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.open--
	if f.mode == ModeCreate {
		f.s.files[f.name] = f.buf
	}
	return nil
}

// Package asset resolves named read-only byte buffers such as fonts and
// bitmaps.
package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

var ErrNotFound = errors.New("asset: not found")

type Provider interface {
	Lookup(name string) ([]byte, error)
}

// Map is a Provider over an in-memory table.
type Map map[string][]byte

func (m Map) Lookup(name string) ([]byte, error) {
	b, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("asset: lookup %q: %w", name, ErrNotFound)
	}
	return b, nil
}

// Names lists the keys of m in order.
func (m Map) Names() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FS is a Provider over an fs.FS, typically an embed.FS or os.DirFS.
type FS struct {
	FS  fs.FS
	Dir string
}

func (p FS) Lookup(name string) ([]byte, error) {
	full := name
	if p.Dir != "" {
		full = path.Join(p.Dir, name)
	}
	if !fs.ValidPath(full) {
		return nil, fmt.Errorf("asset: lookup %q: %w", name, fs.ErrInvalid)
	}
	b, err := fs.ReadFile(p.FS, full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("asset: lookup %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("asset: lookup %q: %w", name, err)
	}
	return b, nil
}

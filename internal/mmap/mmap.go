// Package mmap provides read-only memory-mapped file access.
//
// Raw recordings are routinely tens of gigabytes; mapping them lets trace
// slicing read arbitrary sample windows without buffering the file. On
// platforms without mmap support the package falls back to reading the file
// into memory, which keeps the API usable for small fixtures.
package mmap

import (
	"errors"
	"os"
	"sync/atomic"
)

// ErrClosed is returned when accessing a mapping after Close.
var ErrClosed = errors.New("mmap: mapping is closed")

// Mapping is a read-only view of a file's contents.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped contents. The slice is valid until Close.
func (m *Mapping) Bytes() ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	return m.data, nil
}

// Len returns the size of the mapping in bytes.
func (m *Mapping) Len() int { return len(m.data) }

// Close unmaps the file. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	data := m.data
	m.data = nil
	if m.unmap == nil || data == nil {
		return nil
	}
	return m.unmap(data)
}

package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/neurotap/spikeview/internal/mmap"
)

// LocalStore serves blobs from a directory on the local filesystem.
// Blobs are memory-mapped on open, the cheapest option for the random
// window reads extraction performs.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Open memory-maps the named blob.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}
	return &localBlob{m: m}, nil
}

// Put writes a blob atomically via a temp file and rename.
func (s *LocalStore) Put(_ context.Context, name string, data []byte) error {
	path := filepath.Join(s.root, name)
	tmp, err := os.CreateTemp(s.root, ".blob-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	data, err := b.m.Bytes()
	if err != nil {
		return 0, err
	}
	if off < 0 || off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Len())
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes()
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-memory BlobStore for tests and small fixtures.
// Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Open opens a blob for reading. The returned blob is a snapshot; later Puts
// under the same name do not affect it.
func (s *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &memoryBlob{data: data}, nil
}

// Put stores a blob, replacing any previous contents.
func (s *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)
	s.mu.Lock()
	s.blobs[name] = copied
	s.mu.Unlock()
	return nil
}

type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(b.data).ReadAt(p, off)
}

func (b *memoryBlob) Size() int64          { return int64(len(b.data)) }
func (b *memoryBlob) Close() error         { return nil }
func (b *memoryBlob) Bytes() ([]byte, error) { return b.data, nil }

var _ io.ReaderAt = (*memoryBlob)(nil)

package blobstore

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a BlobStore and keeps fetched blobs in memory.
// Concurrent opens of the same blob are collapsed into a single fetch from
// the inner store. Intended for remote stores where every array is fetched
// once per session; the cache is unbounded and can be dropped with Purge.
type CachingStore struct {
	inner BlobStore

	mu    sync.RWMutex
	cache map[string][]byte
	group singleflight.Group
}

// NewCachingStore wraps inner with an in-memory blob cache.
func NewCachingStore(inner BlobStore) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: make(map[string][]byte),
	}
}

// Open returns the cached blob, fetching it from the inner store on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.mu.RLock()
	data, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return &memoryBlob{data: data}, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		fetched, err := Fetch(ctx, s.inner, name)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[name] = fetched
		s.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return &memoryBlob{data: v.([]byte)}, nil
}

// Purge drops every cached blob.
func (s *CachingStore) Purge() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()
}

// Len returns the number of cached blobs.
func (s *CachingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

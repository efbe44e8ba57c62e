// Package blobstore abstracts access to the immutable array blobs a dataset
// is assembled from (spike columns, template kernels, feature matrices).
//
// Sessions are read-mostly: blobs are written once by the sorting pipeline
// and then fetched whole or in ranges. Implementations cover the local
// filesystem (memory-mapped), memory (tests), and S3-compatible object
// storage (see the minio and s3 subpackages).
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
// The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore opens immutable blobs by name.
type BlobStore interface {
	Open(ctx context.Context, name string) (Blob, error)
}

// Putter is implemented by stores that accept whole-blob writes.
type Putter interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Blob is a read-only handle to a blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for blobs that expose their contents as
// a byte slice without copying. The slice is valid until Close.
type Mappable interface {
	Bytes() ([]byte, error)
}

// Fetch reads the entire named blob. It uses the zero-copy path when the
// blob supports it.
func Fetch(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	out := make([]byte, b.Size())
	if _, err := b.ReadAt(out, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return out, nil
}

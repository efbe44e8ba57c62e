// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object storage.
package minio

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"golang.org/x/time/rate"

	"github.com/neurotap/spikeview/blobstore"
)

// Store serves dataset blobs from a MinIO bucket.
type Store struct {
	client  *minio.Client
	bucket  string
	prefix  string
	limiter *rate.Limiter
}

// Option configures a Store.
type Option func(*Store)

// WithRateLimiter throttles requests to the object store. Useful when a
// shared endpoint caps request rates per client.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(s *Store) { s.limiter = l }
}

// NewStore creates a MinIO-backed blob store. rootPrefix is prepended to all
// keys (e.g. "sessions/2026-08-01/").
func NewStore(client *minio.Client, bucket, rootPrefix string, optFns ...Option) *Store {
	s := &Store{client: client, bucket: bucket, prefix: rootPrefix}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *Store) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

// Open stats the object and returns a range-reading blob handle.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	key := s.key(name)
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return &minioBlob{store: s, ctx: ctx, key: key, size: info.Size}, nil
}

// Put writes a blob in a single request.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data),
		int64(len(data)), minio.PutObjectOptions{})
	return err
}

type minioBlob struct {
	store *Store
	ctx   context.Context
	key   string
	size  int64
}

func (b *minioBlob) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= b.size {
		return 0, io.EOF
	}
	end := off + int64(len(p)) - 1
	if end >= b.size {
		end = b.size - 1
	}
	if err := b.store.wait(b.ctx); err != nil {
		return 0, err
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, err
	}
	obj, err := b.store.client.GetObject(b.ctx, b.store.bucket, b.key, opts)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, p[:end-off+1])
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if err == nil && int64(n) < int64(len(p)) {
		err = io.EOF
	}
	return n, err
}

func (b *minioBlob) Size() int64 { return b.size }

func (b *minioBlob) Close() error { return nil }

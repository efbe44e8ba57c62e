// Package s3 implements blobstore.BlobStore for Amazon S3.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/time/rate"

	"github.com/neurotap/spikeview/blobstore"
)

// Store serves dataset blobs from an S3 bucket.
type Store struct {
	client     *s3.Client
	downloader *manager.Downloader
	bucket     string
	prefix     string
	limiter    *rate.Limiter
}

// Option configures a Store.
type Option func(*Store)

// WithRateLimiter throttles requests to S3.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(s *Store) { s.limiter = l }
}

// NewStore creates an S3-backed blob store. rootPrefix is prepended to all
// keys (e.g. "sessions/2026-08-01/").
func NewStore(client *s3.Client, bucket, rootPrefix string, optFns ...Option) *Store {
	s := &Store{
		client:     client,
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		prefix:     rootPrefix,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// NewStoreFromDefaultConfig builds the S3 client from the ambient AWS
// configuration (environment, shared config, instance role).
func NewStoreFromDefaultConfig(ctx context.Context, bucket, rootPrefix string, optFns ...Option) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(s3.NewFromConfig(cfg), bucket, rootPrefix, optFns...), nil
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

// Open heads the object and returns a range-reading blob handle.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	key := s.key(name)
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return &s3Blob{store: s, ctx: ctx, key: key, size: aws.ToInt64(head.ContentLength)}, nil
}

// Put writes a blob in a single request.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	})
	return err
}

// Download fetches the whole named blob with concurrent ranged requests.
// Prefer this over Fetch for multi-gigabyte raw recordings.
func (s *Store) Download(ctx context.Context, name string) ([]byte, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

type s3Blob struct {
	store *Store
	ctx   context.Context
	key   string
	size  int64
}

func (b *s3Blob) ReadAt(p []byte, off int64) (int, error) {
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

	out, err := b.store.client.GetObject(b.ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.store.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, err
	}
	defer out.Body.Close()

	n, err := io.ReadFull(out.Body, p[:end-off+1])
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if err == nil && int64(n) < int64(len(p)) {
		err = io.EOF
	}
	return n, err
}

func (b *s3Blob) Size() int64 { return b.size }

func (b *s3Blob) Close() error { return nil }

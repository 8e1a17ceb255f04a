// Package storage keeps uploaded message images in a gocloud blob bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/config"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// ErrNotFound is returned by Get for an unknown key.
var ErrNotFound = errors.New("stored file not found")

// Object is a stored file and its content type.
type Object struct {
	Data        []byte
	ContentType string
}

// ImageStore writes and removes image objects.
type ImageStore struct {
	bucket *blob.Bucket
	logger logger.Interface
}

// Open opens the bucket selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log logger.Interface) (*ImageStore, error) {
	var (
		bucket *blob.Bucket
		err    error
	)

	switch cfg.Driver {
	case "file", "":
		bucket, err = fileblob.OpenBucket(cfg.BaseDir, &fileblob.Options{CreateDir: true})
	case "mem":
		bucket = memblob.OpenBucket(nil)
	default:
		bucket, err = blob.OpenBucket(ctx, cfg.BucketURL())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage bucket: %w", cfg.Driver, err)
	}

	log.Infow("image storage opened", "driver", cfg.Driver)
	return NewImageStore(bucket, log), nil
}

func NewImageStore(bucket *blob.Bucket, log logger.Interface) *ImageStore {
	return &ImageStore{bucket: bucket, logger: log}
}

// ImageKey builds a fresh object key for an image attached to ticketID.
func ImageKey(ticketID, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ticket.FileKeyPrefix(ticketID) + uuid.NewString() + ext
}

// Put stores data under key.
func (s *ImageStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// PutImage stores data under a fresh key for ticketID and returns the key.
func (s *ImageStore) PutImage(ctx context.Context, ticketID, ext string, data []byte, contentType string) (string, error) {
	key := ImageKey(ticketID, ext)
	if err := s.Put(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// Get reads the object stored under key.
func (s *ImageStore) Get(ctx context.Context, key string) (*Object, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}

	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return &Object{Data: data, ContentType: attrs.ContentType}, nil
}

// DeleteFile removes key. A missing object is not an error.
func (s *ImageStore) DeleteFile(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			s.logger.Debugw("stored file already gone", "key", key)
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *ImageStore) Close() error {
	return s.bucket.Close()
}

// Package storage keeps product images in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"log/slog"

	"cosmiccraft/config"
	"cosmiccraft/internal/domain/service"
	"cosmiccraft/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

// ErrImageNotFound is returned when the bucket holds no object for a key.
var ErrImageNotFound = errors.New("image not found")

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobStore struct {
	bucket *blob.Bucket
}

// New opens storage.bucketUrl, e.g. file:///var/lib/cosmiccraft/images or mem://.
func New(params Params) (service.ImageStore, error) {
	bucket, err := blob.OpenBucket(context.Background(), params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", params.Config.Storage.BucketURL)
	}

	params.Logger.Info("Image bucket opened", slog.String("url", params.Config.Storage.BucketURL))
	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStore(bucket), nil
}

func NewBlobStore(bucket *blob.Bucket) service.ImageStore {
	return &blobStore{bucket: bucket}
}

func (s *blobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType})

	return errors.Wrapf(err, "failed to write image %s", key)
}

func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrImageNotFound
		}

		return nil, errors.Wrapf(err, "failed to read image %s", key)
	}

	return data, nil
}

// Delete ignores keys that are already gone.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete image %s", key)
	}

	return nil
}

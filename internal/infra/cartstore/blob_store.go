// Package cartstore provides the durable cart storage adapters.
package cartstore

import (
	"context"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"boulevard/internal/domain/repository"
)

// blobStore keeps the serialized cart under a single key in a gocloud blob
// bucket. A file-backed bucket gives the storefront its localStorage
// equivalent; tests use an in-memory bucket.
type blobStore struct {
	bucket *blob.Bucket
	key    string
}

// NewBlobStore wraps an opened bucket as CartStorage. The caller owns the
// bucket's lifecycle.
func NewBlobStore(bucket *blob.Bucket, key string) repository.CartStorage {
	return &blobStore{bucket: bucket, key: key}
}

func (s *blobStore) Load(ctx context.Context) ([]byte, error) {
	value, err := s.bucket.ReadAll(ctx, s.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "read cart blob failed")
	}

	return value, nil
}

func (s *blobStore) Save(ctx context.Context, value []byte) error {
	if err := s.bucket.WriteAll(ctx, s.key, value, nil); err != nil {
		return errors.Wrap(err, "write cart blob failed")
	}

	return nil
}

func (s *blobStore) Delete(ctx context.Context) error {
	if err := s.bucket.Delete(ctx, s.key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "delete cart blob failed")
	}

	return nil
}

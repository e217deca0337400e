package cartstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"boulevard/internal/domain/repository"
)

// redisStore keeps the serialized cart under a single redis key. No TTL: the
// cart lives until cleared or replaced.
type redisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wraps a redis client as CartStorage.
func NewRedisStore(client *redis.Client, key string) repository.CartStorage {
	return &redisStore{client: client, key: key}
}

func (s *redisStore) Load(ctx context.Context) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "read cart key failed")
	}

	return value, nil
}

func (s *redisStore) Save(ctx context.Context, value []byte) error {
	if err := s.client.Set(ctx, s.key, value, 0).Err(); err != nil {
		return errors.Wrap(err, "write cart key failed")
	}

	return nil
}

func (s *redisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Wrap(err, "delete cart key failed")
	}

	return nil
}

package cartstore

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"

	"boulevard/config"
	"boulevard/internal/domain/constants"
	"boulevard/internal/domain/repository"
)

// StorageParams holds dependencies for CartStorage, injected by Fx
type StorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewCartStorage creates a CartStorage based on configuration
func NewCartStorage(params StorageParams) (repository.CartStorage, error) {
	cfg := params.Config.Storage
	logger := params.Logger

	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}

	switch cfg.Provider {
	case constants.StorageProviderFile:
		if cfg.Path == "" {
			return nil, errors.New("path is required for file provider")
		}
		logger.Info("Using file-backed cart storage",
			slog.String("path", cfg.Path),
			slog.String("key", cfg.Key),
		)

		bucket, err := fileblob.OpenBucket(cfg.Path, &fileblob.Options{CreateDir: true})
		if err != nil {
			return nil, errors.Wrap(err, "open file bucket failed")
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return bucket.Close()
			},
		})

		return NewBlobStore(bucket, cfg.Key), nil

	case constants.StorageProviderMemory:
		logger.Info("Using in-memory cart storage, carts do not survive restarts")

		bucket := memblob.OpenBucket(nil)
		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return bucket.Close()
			},
		})

		return NewBlobStore(bucket, cfg.Key), nil

	case constants.StorageProviderRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New("addr is required for redis provider")
		}
		logger.Info("Using redis cart storage",
			slog.String("addr", cfg.Redis.Addr),
			slog.String("key", cfg.Key),
		)

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(params.Ctx).Err(); err != nil {
			return nil, errors.Wrap(err, "redis ping failed")
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})

		return NewRedisStore(client, cfg.Key), nil

	default:
		return nil, errors.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

// Module provides the cart storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewCartStorage),
)

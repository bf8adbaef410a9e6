package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain"
	"epic_notifier/pkg/errcodes"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) Name() string {
	return config.StorageRedis
}

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDocumentNotFound
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, "redis GET "+name)
	}

	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+name, data, 0).Err(); err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, "redis SET "+name)
	}

	return nil
}

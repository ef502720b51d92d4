package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/citywatch/alert_service/internal/store"
	"github.com/redis/go-redis/v9"
)

// RedisStorage хранит записи сторов в Redis по фиксированным ключам.
// TTL не устанавливается: это долговременное хранилище, а не кэш.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) store.Storage {
	return &RedisStorage{client: client}
}

// Load читает запись по ключу. redis.Nil означает отсутствие записи: (nil, nil).
func (r *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record %s from redis: %w", key, err)
	}
	return val, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set record %s in redis: %w", key, err)
	}
	return nil
}

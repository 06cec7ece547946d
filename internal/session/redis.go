package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the token under a single Redis key
type RedisStorage struct {
	client *redis.Client
	key    string
}

var _ TokenStorage = (*RedisStorage)(nil)

// NewRedisStorage creates a RedisStorage; key defaults to TokenKey
func NewRedisStorage(client *redis.Client, key string) *RedisStorage {
	if key == "" {
		key = TokenKey
	}
	return &RedisStorage{client: client, key: key}
}

func (r *RedisStorage) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token from Redis: %w", err)
	}
	return token, nil
}

func (r *RedisStorage) Save(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to save token to Redis: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to delete token from Redis: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

func (r *RedisStorage) Name() string { return "redis" }

package cachestore

import (
	"context"
	"errors"
	"fmt"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/port"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранит записи как строки Redis под префиксом
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET %s: %w", s.key(key), err)
	}
	return data, true, nil
}

// Set пишет без TTL: свежесть определяет timestamp внутри записи
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", s.key(key), err)
	}
	contextkeys.LoggerFromContext(ctx).Debug("Cache entry written", port.Fields{
		"component": "RedisStore",
		"key":       s.key(key),
		"bytes":     len(value),
	})
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", s.key(key), err)
	}
	return nil
}

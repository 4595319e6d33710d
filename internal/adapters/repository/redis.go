package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v9"
)

// RedisBackend stores each collection under "<prefix>:<collection>".
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects and pings the server.
func NewRedisBackend(ctx context.Context, addr, password string, db int, prefix string) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisBackend{client: client, prefix: prefix}, nil
}

// Name implements Backend.
func (b *RedisBackend) Name() string { return DriverRedis }

func (b *RedisBackend) key(collection string) string {
	return b.prefix + ":" + collection
}

// Get implements Backend.
func (b *RedisBackend) Get(ctx context.Context, collection string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

// Put implements Backend.
func (b *RedisBackend) Put(ctx context.Context, collection string, data []byte) error {
	return b.client.Set(ctx, b.key(collection), data, 0).Err()
}

// Close implements Backend.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}

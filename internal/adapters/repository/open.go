package repository

import (
	"context"
	"fmt"
	"strings"
)

// Default backend settings.
const (
	defaultFileDir     = "data"
	defaultBoltPath    = "ladder.db"
	defaultSQLitePath  = "ladder.sqlite"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisPrefix = "ladder"
)

// Open builds a Store for driver. An empty driver selects memory.
func Open(ctx context.Context, driver string, opts ...Option) (*Collections, error) {
	o := &options{
		redisAddr:   defaultRedisAddr,
		redisPrefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(o)
	}

	var (
		backend Backend
		err     error
	)
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		backend = NewMemoryBackend()
	case DriverFile:
		backend, err = NewFileBackend(orDefault(o.path, defaultFileDir), o.compress)
	case DriverBolt:
		backend, err = NewBoltBackend(orDefault(o.path, defaultBoltPath))
	case DriverSQLite:
		backend, err = NewSQLiteBackend(ctx, orDefault(o.path, defaultSQLitePath))
	case DriverRedis:
		backend, err = NewRedisBackend(ctx, o.redisAddr, o.redisPassword, o.redisDB, o.redisPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", driver, err)
	}
	return NewCollections(backend), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

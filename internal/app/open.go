package service

import (
	"context"

	"github.com/okian/ladder/internal/adapters/repository"
	"github.com/okian/ladder/internal/config"
	"github.com/okian/ladder/pkg/logger"
)

// Open opens the repository cfg selects and starts a service on it.
// The repository is closed again when startup fails.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, error) {
	repo, err := repository.Open(ctx, cfg.StorageDriver,
		repository.WithPath(cfg.StoragePath),
		repository.WithCompression(cfg.StorageCompress),
		repository.WithRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		repository.WithKeyPrefix(cfg.RedisPrefix),
	)
	if err != nil {
		return nil, err
	}

	svc := New(
		WithLogger(log),
		WithRepository(repo),
		WithResetSecret(cfg.ResetSecret),
		WithMatchLogCapacity(cfg.MatchLogCapacity),
	)
	if err := svc.Start(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return svc, nil
}

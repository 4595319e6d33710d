// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Load layers a YAML file and LADDER_ env vars over the defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"in:debug,info,warn,warning,error"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// ResetSecret is the token POST /reset must present.
	ResetSecret string `koanf:"reset_secret" validate:"required"`

	// MatchLogCapacity bounds the recent match log.
	MatchLogCapacity int `koanf:"match_log_capacity" validate:"min:1"`

	// CORSOrigins lists allowed browser origins; empty disables CORS headers.
	CORSOrigins []string `koanf:"cors_origins"`

	// StorageDriver selects the backend: memory, file, bolt, sqlite, redis.
	StorageDriver string `koanf:"storage_driver" validate:"required|in:memory,file,bolt,sqlite,redis"`

	// StoragePath is the data directory (file) or database file (bolt, sqlite).
	StoragePath string `koanf:"storage_path"`

	// StorageCompress enables zstd for the file backend.
	StorageCompress bool `koanf:"storage_compress"`

	// Redis connection settings for the redis driver.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db" validate:"min:0"`
	RedisPrefix   string `koanf:"redis_prefix"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		ResetSecret:      "0000",
		MatchLogCapacity: 5,
		StorageDriver:    "file",
		StoragePath:      "data",
		RedisAddr:        "localhost:6379",
		RedisPrefix:      "ladder",
	}
}

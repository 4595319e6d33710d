package repository

// Storage drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// options collects backend settings; each backend reads only what it needs.
type options struct {
	path          string
	compress      bool
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string
}

// Option applies a configuration option to Open.
type Option func(*options)

// WithPath sets the directory (file) or database file (bolt, sqlite).
func WithPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.path = path
		}
	}
}

// WithCompression enables zstd for the file backend.
func WithCompression(enabled bool) Option {
	return func(o *options) {
		o.compress = enabled
	}
}

// WithRedis sets the redis connection.
func WithRedis(addr, password string, db int) Option {
	return func(o *options) {
		if addr != "" {
			o.redisAddr = addr
		}
		o.redisPassword = password
		if db >= 0 {
			o.redisDB = db
		}
	}
}

// WithKeyPrefix sets the redis key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.redisPrefix = prefix
		}
	}
}

package storage

import (
	"fmt"
	"strings"
)

// Options selects and configures a driver.
type Options struct {
	Driver        string
	DatabasePath  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
}

// New builds the driver named by opts.Driver: "sqlite", "memory" or "redis".
func New(opts Options) (KV, error) {
	switch strings.ToLower(opts.Driver) {
	case "", "sqlite":
		return NewSQLiteStore(opts.DatabasePath, opts.Prefix)
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.Prefix,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// Close releases kv if the driver holds resources.
func Close(kv KV) error {
	if c, ok := kv.(Closer); ok {
		return c.Close()
	}
	return nil
}

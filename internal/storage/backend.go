package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("storage: not found")

// Backend stores opaque snapshots under string keys. Save replaces the
// whole value.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Options struct {
	Driver      string
	DataDir     string
	RedisURL    string
	RedisPrefix string
}

func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverFile:
		return NewFileBackend(opts.DataDir)
	case DriverSQLite:
		return OpenSQLite(ctx, filepath.Join(opts.DataDir, "remindd.db"))
	case DriverRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	case DriverMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}

package history

import (
	"context"
	"fmt"

	"github.com/mitchellh/go-homedir"
)

// BackendType selects where history is persisted
type BackendType string

const (
	BackendSQLite BackendType = "sqlite"
	BackendRedis  BackendType = "redis"
	BackendMemory BackendType = "memory"
)

// Options configures Open
type Options struct {
	Backend   BackendType
	Path      string // sqlite file, defaults to the XDG data path
	RedisURL  string
	Namespace string
	Limit     int
}

// Open builds a Store on the configured backend
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		backend Backend
		err     error
	)

	switch opts.Backend {
	case BackendSQLite, "":
		path := opts.Path
		if path == "" {
			path, err = DefaultSQLitePath()
		} else {
			path, err = homedir.Expand(path)
		}
		if err != nil {
			return nil, err
		}
		backend, err = NewSQLiteBackend(path)
	case BackendRedis:
		backend, err = NewRedisBackend(ctx, opts.RedisURL, opts.Namespace)
	case BackendMemory:
		backend = NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", opts.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s history: %w", opts.Backend, err)
	}

	return NewStore(backend, opts.Limit), nil
}

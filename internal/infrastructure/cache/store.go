// Package cache holds short-lived ranking snapshots so read-heavy surfaces
// like the MCP server do not hit the workspace files on every request. The
// default backend is in-process memory; a Redis address in the workspace
// config switches to a shared store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain"
)

// ErrNotFound is returned when a key is missing or expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is a minimal TTL'd key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New builds the store the workspace config asks for.
func New(cfg domain.CacheConfig) (Store, error) {
	if cfg.RedisAddr == "" {
		return NewMemoryStore(), nil
	}
	return NewRedisStore(cfg.RedisAddr, 0)
}

// Package cache provides result caches for the translator. Keys come from
// linguachain.CacheKey and values are JSON-encoded linguachain.Result.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZaguanLabs/linguachain"
)

// TranslationCache is an alias to the main package interface.
type TranslationCache = linguachain.TranslationCache

// Snapshotter is implemented by caches whose contents can be listed.
type Snapshotter interface {
	Entries() (map[string]string, error)
}

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string        // none, memory or redis (default: none)
	TTL        time.Duration // Entry lifetime; 0 keeps entries forever
	MaxEntries int           // Memory backend bound; 0 means unbounded
	RedisURL   string        // e.g. redis://localhost:6379/0
	KeyPrefix  string        // Redis key prefix (default: "linguachain:")
}

// New builds the configured cache. It returns a nil cache for the "none"
// backend, which the translator treats as caching disabled. The returned
// close function is never nil.
func New(ctx context.Context, cfg Config) (TranslationCache, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, noop, nil

	case BackendMemory:
		return NewMemoryCache(cfg.TTL, cfg.MaxEntries), noop, nil

	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisConfig{
			URL:       cfg.RedisURL,
			TTL:       cfg.TTL,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, noop, &linguachain.CacheError{Message: "connect to redis", Cause: err}
		}
		return c, c.Close, nil

	default:
		return nil, noop, &linguachain.CacheError{Message: fmt.Sprintf("unknown cache backend %q", cfg.Backend)}
	}
}

// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: JSON entries under a local directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache
//
// # Keys
//
// A [Keyer] derives keys from content hashes, so identical graphs share
// entries no matter where they came from:
//
//	graphHash := cache.Hash(canonicalJSON)
//	key := keyer.ArtifactKey(graphHash, cache.ArtifactKeyOpts{Format: "text/html"})
//
// [ScopedKeyer] adds a namespace prefix when several deployments share one
// backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend could
// not answer. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Package cache provides the byte-level response cache shared by the
// statistics service clients.
//
// Entries are opaque byte slices addressed by string keys. The CLI uses
// [FileCache] under $XDG_CACHE_HOME/rubiplot; tests and --no-cache runs use
// [NullCache].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLHTTP is how long raw statistics service responses are kept.
	TTLHTTP = 24 * time.Hour

	// TTLForever disables expiration.
	TTLForever time.Duration = 0
)

// Cache stores opaque byte payloads by key.
//
// Get reports (nil, false, nil) on a miss, including expired entries.
// A ttl of zero passed to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// HTTPKey builds the cache key for a raw response of a statistics service.
// The namespace identifies the service (e.g. "pypistats:").
func HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// Package cache provides the parsed-graph cache.
//
// Parsing is cheap for small diagrams but callers like the HTTP API see the
// same fixture diagrams over and over, so parse results are cached as
// serialized graph JSON keyed by the SHA-256 of the diagram text. Three
// backends are available:
//   - FileCache: filesystem entries, the CLI default
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op, for tests and --refresh runs
//
// Keys are content hashes, so entries never go stale; TTLs just bound disk
// and memory growth.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL bounds how long cached parse results are kept.
const DefaultTTL = 30 * 24 * time.Hour

// Cache stores serialized graphs keyed by diagram hash.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultDir returns the default cache directory,
// $XDG_CACHE_HOME/netsketch or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "netsketch"), nil
}

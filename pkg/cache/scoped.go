package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache with a key namespace, isolating one consumer from
// another when several share a backend (the CLI and the HTTP server both
// keep parse results under the "parse" scope, for example). Keys are built
// with Key, so a scoped "deadbeef" lands at "parse:deadbeef".
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a cache whose keys all live under the prefix namespace.
func NewScoped(inner Cache, prefix string) Cache {
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves the namespaced key from the underlying cache.
func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, Key(c.prefix, key))
}

// Set stores the namespaced key in the underlying cache.
func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, Key(c.prefix, key), data, ttl)
}

// Delete removes the namespaced key from the underlying cache.
func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, Key(c.prefix, key))
}

// Close closes the underlying cache.
func (c *Scoped) Close() error { return c.inner.Close() }

// Ensure Scoped implements Cache.
var _ Cache = (*Scoped)(nil)

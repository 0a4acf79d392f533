// Package cache stores rendered artifacts keyed by a content hash.
//
// Rasterizing goes through an external process and dominates the cost of a
// PNG or PDF export. Since SVG output is byte-for-byte reproducible, the
// hash of the SVG plus the raster settings identifies the result, and a
// repeated export can be served from disk.
//
// # Implementations
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// Build keys with [Key], which hashes its parts into a fixed-length string:
//
//	key := cache.Key("png", cache.Hash(svg), scale)
//	data, ok, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long raster artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries. Implementations must be safe
// for use by one process at a time; FileCache is also safe across processes
// as long as writers use distinct keys.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

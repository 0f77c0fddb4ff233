// Package cache stores encode and decode results keyed by content hash.
//
// Decoding is the expensive direction: every decode traces all frames and
// then re-encodes the candidate set for verification. Results are cached
// by the SHA-256 of the input so repeated requests for the same grid or
// rectangle set skip the work. Only successful results are stored; a cached
// decode result was verified before it was written.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] builds keys from content hashes. [ScopedKeyer] adds a prefix so
// several deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for pipeline results.
type Keyer interface {
	// DecodeKey is the key for the rectangle set decoded from a grid with the given text hash.
	DecodeKey(gridHash string) string

	// EncodeKey is the key for the grid encoded from a set with the given hash.
	EncodeKey(setHash string, opts EncodeKeyOpts) string
}

// EncodeKeyOpts holds the encode options that change the output grid.
type EncodeKeyOpts struct {
	Labels bool `json:"labels"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DecodeKey returns "decode:<hash>".
func (DefaultKeyer) DecodeKey(gridHash string) string {
	return "decode:" + gridHash
}

// EncodeKey hashes the set hash together with the options.
func (DefaultKeyer) EncodeKey(setHash string, opts EncodeKeyOpts) string {
	return hashKey("encode", setHash, opts)
}

// Package cache holds resolved dependency sets inside one process.
//
// A Cargo project's package set only changes when its lockfile or a
// manifest changes, so a long-running consumer such as the HTTP server can
// reuse a resolution for a while instead of re-reading every manifest on
// each request. Nothing is persisted: entries die with the process.
//
// # Backends
//
//   - [MemoryCache]: in-process map with per-entry expiry
//   - [NullCache]: stores nothing; every lookup misses
//
// # Resolution caching
//
// [Source] wraps any [authors.Source] and serves cached resolutions until
// their TTL runs out:
//
//	src := cache.NewSource(cargo.NewResolver(cargo.Options{}), cache.NewMemoryCache(), time.Minute)
//
// [authors.Source]: github.com/matzehuels/cargoauthors/pkg/authors.Source
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

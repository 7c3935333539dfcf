package cache

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	"github.com/matzehuels/cargoauthors/pkg/observability"
)

const resolutionPrefix = "resolution:v1"

// Source serves resolutions from a [Cache] and falls back to an inner
// [authors.Source] on a miss. Failed resolutions are never cached.
type Source struct {
	inner authors.Source
	cache Cache
	ttl   time.Duration
}

// NewSource wraps inner. A nil c disables caching.
func NewSource(inner authors.Source, c Cache, ttl time.Duration) *Source {
	if c == nil {
		c = NullCache{}
	}
	return &Source{inner: inner, cache: c, ttl: ttl}
}

var _ authors.Source = (*Source)(nil)

// Resolve implements [authors.Source]. Cache read and write failures fall
// through to the inner source.
func (s *Source) Resolve(ctx context.Context, path string) (*authors.Resolution, error) {
	key := ResolutionKey(path)
	hooks := observability.Cache()

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var res authors.Resolution
		if json.Unmarshal(data, &res) == nil {
			hooks.OnCacheHit(ctx, key)
			return &res, nil
		}
	}
	hooks.OnCacheMiss(ctx, key)

	res, err := s.inner.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(res); err == nil {
		if s.cache.Set(ctx, key, data, s.ttl) == nil {
			hooks.OnCacheSet(ctx, key, len(data))
		}
	}
	return res, nil
}

// ResolutionKey returns the cache key for the project at path. Relative
// paths are made absolute so "." and its absolute form share an entry.
func ResolutionKey(path string) string {
	if path == "" {
		path = "."
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return Key(resolutionPrefix, path)
}

// Package cache provides the engine's best-effort key-value cache.
//
// Entries are serialized bytes: every interaction is copy-in/copy-out at
// the API boundary, so no holder can mutate a cached value in place. The
// cache never fails a caller — any backend problem is an unconditional
// miss.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is the store contract shared by the in-process and Redis backends.
type Cache interface {
	// Get returns the entry bytes, or ok=false when the key is absent or
	// expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set unconditionally overwrites the entry and resets its TTL clock.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// GetJSON reads and decodes a cached value. Decode failures count as a
// miss: a stale or corrupt entry must never surface as an error.
func GetJSON[V any](ctx context.Context, c Cache, key string) (V, bool) {
	var v V
	data, ok := c.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}

// SetJSON encodes and stores a value. Values that cannot be encoded are
// dropped — caching is best-effort and never propagates a failure.
func SetJSON[V any](ctx context.Context, c Cache, key string, v V, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, data, ttl)
}

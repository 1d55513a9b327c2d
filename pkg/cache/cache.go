// Package cache defines the caching interface used by the HTTP request layer.
package cache

import (
	"context"

	"wayfargo/pkg/store"
)

// Cacher defines the caching interface.
type Cacher interface {
	GetCache(ctx context.Context, key string) ([]byte, bool)
	SetCache(ctx context.Context, key string, val []byte) error
}

// StoreCache implements Cacher on top of the persistent store.
type StoreCache struct {
	st store.CacheStore
}

// NewStoreCache creates a cache backed by the given store.
func NewStoreCache(st store.CacheStore) *StoreCache {
	return &StoreCache{st: st}
}

func (c *StoreCache) GetCache(ctx context.Context, key string) ([]byte, bool) {
	return c.st.GetCache(ctx, key)
}

func (c *StoreCache) SetCache(ctx context.Context, key string, val []byte) error {
	return c.st.SetCache(ctx, key, val)
}

// NullCache is a Cacher that never hits, for callers that must bypass caching.
type NullCache struct{}

func (NullCache) GetCache(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (NullCache) SetCache(ctx context.Context, key string, val []byte) error {
	return nil
}

package store

import (
	"context"
	"time"

	"wayfargo/pkg/model"
)

// EventStore handles trip-event persistence.
type EventStore interface {
	SaveEvent(ctx context.Context, event *model.NavEvent) error
	GetEventsSince(ctx context.Context, since time.Time) ([]model.NavEvent, error)
}

// CacheStore handles generic key-value caching.
type CacheStore interface {
	GetCache(ctx context.Context, key string) ([]byte, bool)
	SetCache(ctx context.Context, key string, val []byte) error
	ListCacheKeys(ctx context.Context, prefix string) ([]string, error)
}

// StateStore handles persistent application state.
type StateStore interface {
	GetState(ctx context.Context, key string) (string, bool)
	SetState(ctx context.Context, key, val string) error
	DeleteState(ctx context.Context, key string) error
}

// Store defines the repository interface.
// It composes all sub-interfaces for full store access.
// Consumers should depend on specific sub-interfaces when possible.
type Store interface {
	EventStore
	CacheStore
	StateStore

	// Close closes the store connection.
	Close() error
}

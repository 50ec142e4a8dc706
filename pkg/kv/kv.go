// Package kv defines the durable key-value surface the transaction log
// persists through. The engine stores the whole log under a single key;
// there are no partial updates.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports an absent key. Callers treat it as "no prior
// state", not as a failure.
var ErrNotFound = errors.New("kv: key not found")

// Store is the minimal get/set-by-key capability of the durable medium.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// TTLStore extends Store with expiring writes, used by read-through
// caches rather than the transaction log.
type TTLStore interface {
	Store
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

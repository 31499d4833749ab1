// Package cache is the advisory key/value layer in front of the notes store.
//
// Every failure, a miss included, is non-fatal: callers fall back to the
// authoritative store and never surface cache errors to clients.
package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL applies when a caller passes a non-positive ttl to Set.
const DefaultTTL = 3600 * time.Second

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NotesKey is the listing slot for everything userID can see.
func NotesKey(userID string) string {
	return "notes:" + userID
}

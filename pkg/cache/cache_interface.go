package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract shared by the Redis client and the in-memory fallback.
type Cache interface {
	// Get unmarshals the stored JSON into dest. found is false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value as JSON. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	// Counters used by failed-login tracking
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

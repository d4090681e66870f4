package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract the repository layer reads through.
type Cache interface {
	// Get unmarshals the cached value into dest and reports whether the key existed.
	// On a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}

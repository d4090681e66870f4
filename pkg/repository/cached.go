package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"htc-backend/pkg/cache"
)

const DefaultCacheTTL = 15 * time.Minute

// Cached wraps a repository with cache-aside reads by id.
// Writes go straight to the store and evict the cached copy.
type Cached[T Entity] struct {
	Repository[T]
	cache cache.Cache
	newFn func() T
	ttl   time.Duration
}

func NewCached[T Entity](inner Repository[T], c cache.Cache, newFn func() T, ttl time.Duration) *Cached[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached[T]{Repository: inner, cache: c, newFn: newFn, ttl: ttl}
}

// CacheKey follows the "entity:id" convention.
func CacheKey(collection, id string) string {
	return fmt.Sprintf("%s:%s", collection, id)
}

func (r *Cached[T]) GetByID(ctx context.Context, id string) (T, error) {
	key := CacheKey(r.Collection(), id)

	doc := r.newFn()
	found, err := r.cache.Get(ctx, key, doc)
	if err == nil && found {
		return doc, nil
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
	}

	doc, err = r.Repository.GetByID(ctx, id)
	if err != nil {
		return doc, err
	}

	if err := r.cache.Set(ctx, key, doc, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return doc, nil
}

func (r *Cached[T]) Update(ctx context.Context, id string, entity T) (UpdateResult, error) {
	result, err := r.Repository.Update(ctx, id, entity)
	if err == nil && result == UpdateApplied {
		r.evict(ctx, id)
	}
	return result, err
}

func (r *Cached[T]) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.Repository.Delete(ctx, id)
	if err == nil && deleted {
		r.evict(ctx, id)
	}
	return deleted, err
}

func (r *Cached[T]) evict(ctx context.Context, id string) {
	key := CacheKey(r.Collection(), id)
	if err := r.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache evict failed")
	}
}

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/internal/config"
	pkgcache "htc-backend/pkg/cache"
)

var _ pkgcache.Cache = (*RedisCache)(nil)

func TestRedisCache_UnreachableServer(t *testing.T) {
	client := NewRedisClient(config.RedisConfig{Host: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedisCache(client)
	ctx := context.Background()

	var dest map[string]string
	found, err := c.Get(ctx, "artists:1", &dest)
	require.Error(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)

	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Delete(ctx))
}

func TestRedisCache_SetRejectsUnencodable(t *testing.T) {
	c := NewRedisCache(NewRedisClient(config.RedisConfig{Host: "127.0.0.1:1"}))

	err := c.Set(context.Background(), "k", make(chan int), 0)
	assert.ErrorContains(t, err, "encode k")
}

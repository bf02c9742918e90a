package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUCache_SetAndGet(t *testing.T) {
	cache := NewLRU[string]("test", 2)
	ctx := context.Background()

	cache.Set(ctx, "dub", "Dubai")
	val, found := cache.Get(ctx, "dub")
	assert.True(t, found)
	assert.Equal(t, "Dubai", val)

	cache.Set(ctx, "sha", "Shanghai")
	val, found = cache.Get(ctx, "sha")
	assert.True(t, found)
	assert.Equal(t, "Shanghai", val)
	assert.Equal(t, 2, cache.Len())
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRU[int]("test", 2)
	ctx := context.Background()

	cache.Set(ctx, "a", 1)
	cache.Set(ctx, "b", 2)
	// "a" - самый старый, вытесняется
	cache.Set(ctx, "c", 3)

	_, found := cache.Get(ctx, "a")
	assert.False(t, found, "a should be evicted")

	val, found := cache.Get(ctx, "c")
	assert.True(t, found)
	assert.Equal(t, 3, val)
	assert.Equal(t, 2, cache.Len())
}

func TestLRUCache_UsageUpdatesOrder(t *testing.T) {
	cache := NewLRU[int]("test", 2)
	ctx := context.Background()

	cache.Set(ctx, "a", 1)
	cache.Set(ctx, "b", 2)

	// Чтение делает "a" самым новым, вытесняется "b"
	cache.Get(ctx, "a")
	cache.Set(ctx, "c", 3)

	_, found := cache.Get(ctx, "b")
	assert.False(t, found, "b should be evicted")
	_, found = cache.Get(ctx, "a")
	assert.True(t, found)
}

func TestLRUCache_UpdateValue(t *testing.T) {
	cache := NewLRU[string]("test", 2)
	ctx := context.Background()

	cache.Set(ctx, "k", "old")
	cache.Set(ctx, "k", "new")

	val, found := cache.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "new", val)
	assert.Equal(t, 1, cache.Len())
}

func TestLRUCache_ZeroCapacity(t *testing.T) {
	cache := NewLRU[string]("test", 0)
	ctx := context.Background()

	cache.Set(ctx, "k", "v")
	_, found := cache.Get(ctx, "k")
	assert.False(t, found)
}

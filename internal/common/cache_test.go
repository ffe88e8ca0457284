package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(50*time.Millisecond, time.Minute)

	c.Set("key", "value")

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestCacheSetWithExpiration(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set("key", "value", 50*time.Millisecond)

	_, ok := c.Get("key")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestCacheAddIsFirstWriterWins(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	assert.True(t, c.Add("key", "first"))
	assert.False(t, c.Add("key", "second"))

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "first", got)
}

func TestCacheFlush(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set(CacheKeyPublishedPosts(), []string{"a"})
	c.Set(CacheKeyProfile("user-1"), "profile")
	c.Flush()

	_, ok := c.Get(CacheKeyPublishedPosts())
	assert.False(t, ok)

	_, ok = c.Get(CacheKeyProfile("user-1"))
	assert.False(t, ok)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "posts:published", CacheKeyPublishedPosts())
	assert.Equal(t, "posts_by_author:u1", CacheKeyPostsByAuthor("u1"))
	assert.Equal(t, "profile:u1", CacheKeyProfile("u1"))
}

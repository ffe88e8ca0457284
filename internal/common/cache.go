package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Add stores the value only if the key is absent, reporting whether
// this call won the slot.
func (c *Cache) Add(key string, value interface{}) bool {
	return c.Cache.Add(key, value, cache.DefaultExpiration) == nil
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyPublishedPosts() string {
	return "posts:published"
}

func CacheKeyPostsByAuthor(authorID string) string {
	return "posts_by_author:" + authorID
}

func CacheKeyProfile(userID string) string {
	return "profile:" + userID
}

func CacheKeyRateLimiter(clientIP string) string {
	return "rate_limiter:" + clientIP
}

package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

const DefaultLocationCacheSize = 64

// LocationCache memoizes IANA zone lookups. Failed lookups are not cached.
type LocationCache struct {
	cache *lru.Cache[string, *time.Location]
}

func NewLocationCache(size int) *LocationCache {
	if size <= 0 {
		size = DefaultLocationCacheSize
	}

	// lru.New only fails for a non-positive size.
	c, _ := lru.New[string, *time.Location](size)

	return &LocationCache{cache: c}
}

func (c *LocationCache) Load(name string) (*time.Location, error) {
	if loc, ok := c.cache.Get(name); ok {
		return loc, nil
	}

	loc, err := domain.LoadTimezone(name)
	if err != nil {
		return nil, err
	}

	c.cache.Add(name, loc)

	return loc, nil
}

func (c *LocationCache) Len() int {
	return c.cache.Len()
}

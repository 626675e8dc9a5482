package imgcache

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the image bytes for a key on cache miss.
type LoadFunc func(ctx context.Context, key string) ([]byte, error)

// Fetcher is a read-through front for a Cache. Concurrent misses on
// the same key share one load via singleflight.
type Fetcher struct {
	Cache Cache
	Load  LoadFunc

	group singleflight.Group
}

func NewFetcher(cache Cache, load LoadFunc) *Fetcher {
	return &Fetcher{Cache: cache, Load: load}
}

func (f *Fetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	data, found, err := f.Cache.Get(ctx, key)
	if err != nil {
		// cache trouble is not a fetch failure
		log.Printf("[WARN][imgcache] get %q: %v", key, err)
	}
	if found {
		return data, nil
	}

	v, err, _ := f.group.Do(key, func() (any, error) {
		loaded, err := f.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		if err := f.Cache.Set(ctx, key, loaded); err != nil {
			log.Printf("[WARN][imgcache] set %q: %v", key, err)
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

package imgcache

import (
	"context"
	"time"

	"github.com/naderabdullah/cardforge/db/kvdb"
)

const kvKeyPrefix = "imgcache:"

// KVCache stores image bytes in a kvdb backend so multiple instances
// share one cache. Expiry is handled by the backend.
type KVCache struct {
	DB  kvdb.Client
	TTL time.Duration
}

// Ensure KVCache implements Cache interface
var _ Cache = (*KVCache)(nil)

func NewKVCache(db kvdb.Client, ttl time.Duration) *KVCache {
	return &KVCache{DB: db, TTL: ttl}
}

func (c *KVCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := c.DB.Get(ctx, kvKeyPrefix+key)
	if err != nil || !found {
		return nil, false, err
	}
	return []byte(val), true, nil
}

func (c *KVCache) Set(ctx context.Context, key string, data []byte) error {
	return c.DB.Set(ctx, kvKeyPrefix+key, data, c.TTL)
}

func (c *KVCache) Delete(ctx context.Context, key string) error {
	_, err := c.DB.Delete(ctx, kvKeyPrefix+key)
	return err
}

package imgcache

import (
	"context"
	"log"
	"sync"
	"time"
)

type memEntry struct {
	data    []byte
	addedAt time.Time
}

// MemoryCache is a bounded in-process cache. When full, the oldest
// entry goes first. Expired entries are dropped on read and by Sweep,
// which the scheduler runs periodically.
type MemoryCache struct {
	Capacity int
	TTL      time.Duration

	mu      sync.Mutex
	entries map[string]memEntry
}

// Ensure MemoryCache implements Cache interface
var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		Capacity: capacity,
		TTL:      ttl,
		entries:  make(map[string]memEntry, capacity),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.expired(e, time.Now()) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && c.Capacity > 0 && len(c.entries) >= c.Capacity {
		c.evictOldestLocked()
	}
	c.entries[key] = memEntry{data: data, addedAt: time.Now()}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Sweep removes expired entries and returns how many it dropped.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	dropped := 0
	for key, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, key)
			dropped++
		}
	}
	if dropped > 0 {
		log.Printf("[INFO][imgcache] swept %d expired entries, %d remain", dropped, len(c.entries))
	}
	return dropped
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) expired(e memEntry, now time.Time) bool {
	return c.TTL > 0 && now.Sub(e.addedAt) > c.TTL
}

func (c *MemoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		first     = true
	)
	for key, e := range c.entries {
		if first || e.addedAt.Before(oldestAt) {
			oldestKey, oldestAt = key, e.addedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

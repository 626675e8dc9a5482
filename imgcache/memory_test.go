package imgcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4, time.Minute)

	_, found, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "a", []byte("img-a")))
	data, found, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("img-a"), data)

	require.NoError(t, c.Delete(ctx, "a"))
	_, found, _ = c.Get(ctx, "a")
	assert.False(t, found)
}

func TestMemoryCacheEvictsOldestAtCapacity(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, 0)

	require.NoError(t, c.Set(ctx, "first", []byte("1")))
	time.Sleep(2 * time.Millisecond) // ordering by addedAt
	require.NoError(t, c.Set(ctx, "second", []byte("2")))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, c.Set(ctx, "third", []byte("3")))

	assert.Equal(t, 2, c.Len())
	_, found, _ := c.Get(ctx, "first")
	assert.False(t, found, "oldest entry should have been evicted")
	_, found, _ = c.Get(ctx, "third")
	assert.True(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4, 5*time.Millisecond)

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	time.Sleep(10 * time.Millisecond)

	_, found, _ := c.Get(ctx, "a")
	assert.False(t, found, "expired entry served")
}

func TestMemoryCacheSweep(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(8, 5*time.Millisecond)

	require.NoError(t, c.Set(ctx, "old1", []byte("1")))
	require.NoError(t, c.Set(ctx, "old2", []byte("2")))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, c.Set(ctx, "fresh", []byte("3")))

	assert.Equal(t, 2, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestFetcherReadThrough(t *testing.T) {
	ctx := context.Background()
	var loads atomic.Int32
	f := NewFetcher(NewMemoryCache(4, time.Minute), func(_ context.Context, key string) ([]byte, error) {
		loads.Add(1)
		return []byte("bytes-" + key), nil
	})

	for i := 0; i < 3; i++ {
		data, err := f.Fetch(ctx, "logo-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("bytes-logo-1"), data)
	}
	assert.Equal(t, int32(1), loads.Load(), "cache hit should not reload")
}

func TestFetcherLoadError(t *testing.T) {
	wantErr := errors.New("store offline")
	f := NewFetcher(NewMemoryCache(4, time.Minute), func(_ context.Context, _ string) ([]byte, error) {
		return nil, wantErr
	})
	_, err := f.Fetch(context.Background(), "logo-1")
	assert.ErrorIs(t, err, wantErr)
}

func TestFetcherCollapsesConcurrentMisses(t *testing.T) {
	var loads atomic.Int32
	release := make(chan struct{})
	f := NewFetcher(NewMemoryCache(4, time.Minute), func(_ context.Context, key string) ([]byte, error) {
		loads.Add(1)
		<-release
		return []byte("x"), nil
	})

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := f.Fetch(context.Background(), "logo-1")
			assert.NoError(t, err)
			assert.Equal(t, []byte("x"), data)
		}()
	}
	time.Sleep(20 * time.Millisecond) // let every worker reach the cache miss
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load(), "concurrent misses should share one load")
}

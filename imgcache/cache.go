package imgcache

import "context"

// Cache stores prepared image bytes (decoded-and-validated logo
// rasters) keyed by image ID. Implementations bound their own size and
// expire entries; callers inject the implementation they want.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error) // data, found, err
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

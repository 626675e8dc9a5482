package kvdb

import (
	"context"
	"errors"
	"time"
)

// Client is the key-value backend surface. The app uses the key and
// single-value ops; list and hash ops are there for backends that
// support them.
type Client interface {
	Init() error
	Close() error
	GetHandle() any // backend-specific handle
	GetConf() *Conf

	//---- Key Ops ----

	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) (int64, error)
	// Expire sets or updates a key's TTL
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) // found & updated, err

	// ScanKeys iterates keys in batches from the given cursor. The
	// cursor is backend-specific and opaque; nil nextCursor means the
	// scan is complete. Batch sizes are best effort. Backends without
	// key iteration return ErrNotSupported.
	ScanKeys(ctx context.Context, cursor any, scanBatchSize int) ([]string, any, error)

	//---- Single-value Ops ----

	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error) // val, found, err

	//---- List Ops ----

	Push(ctx context.Context, key string, value string) error
	Pop(ctx context.Context, key string) (string, bool, error) // val, found, err
	Len(ctx context.Context, key string) (int64, error)
	Range(ctx context.Context, key string, start int64, stop int64) ([]string, error) // stop inclusive
	Remove(ctx context.Context, key string, cnt int64, value any) (int64, error)      // cnt 0 = all occurrences
	Trim(ctx context.Context, key string, start int64, stop int64) error              // stop inclusive

	//---- Hash Ops ----

	SetField(ctx context.Context, key string, field string, value any) error
	GetField(ctx context.Context, key string, field string) (string, bool, error) // val, found, err
	SetFields(ctx context.Context, key string, fields map[string]any) error
	// GetFields returns values of the fields that exist; compare
	// lengths to tell whether all were found.
	GetFields(ctx context.Context, key string, fields ...string) (map[string]string, error)
	RemoveFields(ctx context.Context, key string, fields ...string) (int64, error) // returns removed count
	GetAllFields(ctx context.Context, key string) (map[string]string, error)
}

var ErrNotSupported = errors.New("kvdb: operation not supported")

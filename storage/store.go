// Package storage persists controller parameters under string keys.
package storage

import "context"

// Store is a key/value store for serialized controllers. Keys follow the
// "snake{prefix}--{index}" convention used by the game package; the store
// itself treats them as opaque.
type Store interface {
	Init(ctx context.Context) error
	Put(ctx context.Context, key string, payload []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

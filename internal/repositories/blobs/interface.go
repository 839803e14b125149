// Package blobs is the key-value persistence layer. Every collection and the
// session are stored as one opaque value under a fixed key; backends only
// move bytes and never interpret them.
package blobs

import (
	"context"
)

// Repository stores opaque values by key.
//
// Get returns (nil, nil) when the key is absent. Set replaces any previous
// value. Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Updater is implemented by backends that can read-modify-write a key
// atomically. fn receives the current value (nil when absent) and returns
// the value to store; an error from fn aborts the update.
type Updater interface {
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}

// Update applies fn to the value under key, atomically when repo is an
// Updater and as a plain Get followed by Set otherwise.
func Update(ctx context.Context, repo Repository, key string, fn func(current []byte) ([]byte, error)) error {
	if u, ok := repo.(Updater); ok {
		return u.Update(ctx, key, fn)
	}

	current, err := repo.Get(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return repo.Set(ctx, key, next)
}

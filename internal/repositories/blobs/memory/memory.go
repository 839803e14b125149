// Package memory is an in-process blob repository. An optional byte quota
// mimics the storage limits of a browser profile.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/memories/internal/common"
)

type Repository struct {
	mu       sync.Mutex
	data     map[string][]byte
	used     int
	maxBytes int
}

// NewRepository returns an empty repository. maxBytes <= 0 disables the quota;
// otherwise the summed length of all keys and values may not exceed it.
func NewRepository(maxBytes int) *Repository {
	return &Repository{data: make(map[string][]byte), maxBytes: maxBytes}
}

func (r *Repository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return clone(v), nil
}

func (r *Repository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set(key, value)
}

func (r *Repository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.data[key]; ok {
		r.used -= len(key) + len(v)
		delete(r.data, key)
	}
	return nil
}

func (r *Repository) Update(_ context.Context, key string, fn func([]byte) ([]byte, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current []byte
	if v, ok := r.data[key]; ok {
		current = clone(v)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return r.set(key, next)
}

func (r *Repository) Close() error {
	return nil
}

// Used reports the bytes counted against the quota.
func (r *Repository) Used() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

func (r *Repository) set(key string, value []byte) error {
	used := r.used + len(key) + len(value)
	if old, ok := r.data[key]; ok {
		used -= len(key) + len(old)
	}
	if r.maxBytes > 0 && used > r.maxBytes {
		return fmt.Errorf("set %q (%d bytes): %w", key, len(value), common.ErrQuotaExceeded)
	}
	r.data[key] = clone(value)
	r.used = used
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

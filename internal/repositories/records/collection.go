// Package records stores typed record collections as JSON arrays, one blob
// per collection. Every mutation reads the whole array, changes it and
// writes it back.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memories/internal/common"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs"
)

// Record is an element of a Collection.
type Record interface {
	GetID() string
	// Field returns the string value of the named JSON field, and false when
	// the record has no such field or it is absent.
	Field(name string) (string, bool)
}

// errUnchanged aborts a mutation without writing.
var errUnchanged = errors.New("unchanged")

type Collection[T Record] struct {
	name   string
	repo   blobs.Repository
	logger logging.Logger
}

func NewCollection[T Record](name string, repo blobs.Repository, logger logging.Logger) *Collection[T] {
	return &Collection[T]{name: name, repo: repo, logger: logger.With("collection", name)}
}

func (c *Collection[T]) Name() string { return c.name }

// GetAll returns every record. An absent, unreadable or corrupt blob yields
// an empty slice; the cause is logged.
func (c *Collection[T]) GetAll(ctx context.Context) []T {
	items, err := c.load(ctx)
	if err != nil {
		c.logger.Error(ctx, "failed to read collection", "err", err)
		return []T{}
	}
	return items
}

// FindByID returns the first record with id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool) {
	for _, it := range c.GetAll(ctx) {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// FilterByField returns the records whose field equals value exactly.
func (c *Collection[T]) FilterByField(ctx context.Context, field, value string) []T {
	return filter(c.GetAll(ctx), field, value)
}

// Find is FindByID for callers that must tell a missing record from an
// unreadable collection. Read failures wrap common.ErrStorage.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, it := range items {
		if it.GetID() == id {
			return it, true, nil
		}
	}
	return zero, false, nil
}

// Filter is FilterByField returning read failures instead of an empty slice.
func (c *Collection[T]) Filter(ctx context.Context, field, value string) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, field, value), nil
}

func filter[T Record](items []T, field, value string) []T {
	out := []T{}
	for _, it := range items {
		if v, ok := it.Field(field); ok && v == value {
			out = append(out, it)
		}
	}
	return out
}

// Insert appends rec.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append(items, rec), nil
	})
}

// Append is Insert reporting only success.
func (c *Collection[T]) Append(ctx context.Context, rec T) bool {
	if err := c.Insert(ctx, rec); err != nil {
		c.logger.Error(ctx, "failed to append record", "id", rec.GetID(), "err", err)
		return false
	}
	return true
}

// Update applies fn to the first record with id. It returns
// common.ErrNotFound, without writing, when there is none.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T)) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].GetID() == id {
				fn(&items[i])
				return items, nil
			}
		}
		return nil, fmt.Errorf("%s/%s: %w", c.name, id, common.ErrNotFound)
	})
}

// UpdateByID is Update reporting only success.
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, fn func(*T)) bool {
	if err := c.Update(ctx, id, fn); err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			c.logger.Error(ctx, "failed to update record", "id", id, "err", err)
		}
		return false
	}
	return true
}

// UpdateWhere applies fn to every record match accepts, in one write, and
// returns how many changed. Nothing is written when none match.
func (c *Collection[T]) UpdateWhere(ctx context.Context, match func(T) bool, fn func(*T)) (int, error) {
	n := 0
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if match(items[i]) {
				fn(&items[i])
				n++
			}
		}
		if n == 0 {
			return nil, errUnchanged
		}
		return items, nil
	})
	if errors.Is(err, errUnchanged) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Remove deletes the first record with id. A missing id is not an error; the
// collection is rewritten either way.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].GetID() == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return items, nil
	})
}

// DeleteByID is Remove reporting only whether the write succeeded.
func (c *Collection[T]) DeleteByID(ctx context.Context, id string) bool {
	if err := c.Remove(ctx, id); err != nil {
		c.logger.Error(ctx, "failed to delete record", "id", id, "err", err)
		return false
	}
	return true
}

// load reads the collection, failing only when the backend does.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.repo.Get(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", common.ErrStorage, c.name, err)
	}
	return c.decode(ctx, data), nil
}

func (c *Collection[T]) decode(ctx context.Context, data []byte) []T {
	if len(data) == 0 {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn(ctx, "collection is corrupt, treating as empty", "err", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// mutate runs fn over the current records and persists the result. Errors
// returned by fn pass through unchanged; backend and encoding failures wrap
// common.ErrStorage.
func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	var fnErr error
	err := blobs.Update(ctx, c.repo, c.name, func(current []byte) ([]byte, error) {
		items, err := fn(c.decode(ctx, current))
		if err != nil {
			fnErr = err
			return nil, err
		}
		return json.Marshal(items)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrStorage, c.name, err)
	}
	return nil
}

package entity

import (
	"context"
	"fmt"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// validator is implemented by entities that check their own fields.
type validator interface {
	Validate() error
}

var _ types.Collection[types.Server] = (*Collection[types.Server])(nil)

// Collection implements types.Collection[T] over a Store.
type Collection[T any] struct {
	store *Store
}

// NewCollection wraps store. Validation is whatever store was opened with;
// OpenCollection installs the check for T.
func NewCollection[T any](store *Store) *Collection[T] {
	return &Collection[T]{store: store}
}

// OpenCollection opens a Store for name whose records must decode into T
// and, when T implements Validate() error, pass it.
func OpenCollection[T any](ctx context.Context, m types.Medium, name string, seed []T, opts ...Option) (*Collection[T], error) {
	records := make([]types.Record, 0, len(seed))
	for _, e := range seed {
		r, err := types.ToRecord(e)
		if err != nil {
			return nil, fmt.Errorf("%w: seed %s: %w", types.ErrInvalidData, name, err)
		}
		records = append(records, r)
	}

	opts = append(opts, WithValidator(ValidatorFor[T]()))
	store, err := Open(ctx, m, name, records, opts...)
	if err != nil {
		return nil, err
	}
	return NewCollection[T](store), nil
}

// ValidatorFor returns a record check that decodes into T and runs T's
// Validate method when it has one.
func ValidatorFor[T any]() func(types.Record) error {
	return func(r types.Record) error {
		e, err := types.FromRecord[T](r)
		if err != nil {
			return fmt.Errorf("%w: %w", types.ErrInvalidData, err)
		}
		if v, ok := any(e).(validator); ok {
			return v.Validate()
		}
		return nil
	}
}

// Store returns the underlying record store.
func (c *Collection[T]) Store() *Store {
	return c.store
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.store.Name()
}

// List returns the collection ordered and truncated by opts.
func (c *Collection[T]) List(ctx context.Context, opts types.ListOptions) ([]T, error) {
	records, err := c.store.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](records)
}

// Filter returns the entities matching query exactly.
func (c *Collection[T]) Filter(ctx context.Context, query types.Record, opts types.ListOptions) ([]T, error) {
	records, err := c.store.Filter(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](records)
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(ctx context.Context, id int) (T, error) {
	r, err := c.store.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return types.FromRecord[T](r)
}

// Create stores entity as a new record. Its Meta is ignored; the returned
// value carries the assigned id and timestamps.
func (c *Collection[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	fields, err := types.ToRecord(entity)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}
	r, err := c.store.Create(ctx, fields)
	if err != nil {
		return zero, err
	}
	return types.FromRecord[T](r)
}

// Update merges fields over the entity with the given id.
func (c *Collection[T]) Update(ctx context.Context, id int, fields types.Record) (T, error) {
	r, err := c.store.Update(ctx, id, fields)
	if err != nil {
		var zero T
		return zero, err
	}
	return types.FromRecord[T](r)
}

// Delete removes the entity with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	return c.store.Delete(ctx, id)
}

func decodeAll[T any](records []types.Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, r := range records {
		e, err := types.FromRecord[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

package types

import (
	"context"
	"errors"
)

// Default query parameters applied when ListOptions fields are zero.
const (
	DefaultSort  = "-updated_date"
	DefaultLimit = 50
)

// ListOptions controls ordering and truncation of List and Filter.
// Sort names a record field; a leading "-" orders descending. A zero Limit
// means DefaultLimit and a negative Limit disables truncation.
type ListOptions struct {
	Sort  string
	Limit int
}

// Normalize fills zero fields with their defaults.
func (o ListOptions) Normalize() ListOptions {
	if o.Sort == "" {
		o.Sort = DefaultSort
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// EntityStore provides list, filter, create, update and delete over one
// named collection of schema-free records. The store owns id, created_date
// and updated_date; callers never supply them.
type EntityStore interface {
	// Name returns the collection name.
	Name() string

	// List returns a copy of the collection ordered and truncated by opts.
	List(ctx context.Context, opts ListOptions) ([]Record, error)

	// Filter returns records whose value for every key in query equals
	// the query value, ordered and truncated like List. An empty query
	// behaves as List.
	Filter(ctx context.Context, query Record, opts ListOptions) ([]Record, error)

	// Get returns the record with the given id.
	// Returns ErrNotFound if no record has that id.
	Get(ctx context.Context, id int) (Record, error)

	// Create assigns the next id, stamps both timestamps, appends the
	// record and persists the collection.
	Create(ctx context.Context, fields Record) (Record, error)

	// Update merges fields over the record with the given id, refreshes
	// updated_date and persists. Returns ErrNotFound, leaving the
	// collection untouched, if no record has that id.
	Update(ctx context.Context, id int, fields Record) (Record, error)

	// Delete removes the record with the given id and persists.
	// Deleting an absent id succeeds.
	Delete(ctx context.Context, id int) error
}

// Collection is the typed view of an EntityStore for one entity type.
// Filters and patches stay field maps; results are decoded into T.
type Collection[T any] interface {
	Name() string
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Filter(ctx context.Context, query Record, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id int, fields Record) (T, error)
	Delete(ctx context.Context, id int) error
}

// SessionStore models the current identity as a single optional record.
// The mock implementation completes every call immediately; a real identity
// client satisfies the same contract with network I/O.
type SessionStore interface {
	// IsAuthenticated reports whether a session exists. It never fails.
	IsAuthenticated(ctx context.Context) bool

	// Me returns the current user.
	// Returns ErrNotAuthenticated when no session exists.
	Me(ctx context.Context) (*User, error)

	// RedirectToLogin establishes a session and returns the location the
	// caller should navigate to (next, or "/" when empty).
	RedirectToLogin(ctx context.Context, next string) (string, error)

	// UpdateMe merges fields over the current user and persists it.
	UpdateMe(ctx context.Context, fields Record) (*User, error)

	// Logout removes the session and returns the location the caller
	// should navigate to (redirect, or "/" when empty).
	Logout(ctx context.Context, redirect string) (string, error)
}

// Store operation errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidData      = errors.New("invalid record data")
	ErrInvalidName      = errors.New("invalid collection name")
	ErrStorage          = errors.New("storage failure")
	ErrCorrupt          = errors.New("persisted value is corrupt")
)

package types

import (
	"context"
	"errors"
)

// Medium is the durable key-value storage both stores are layered on. Each
// collection and the session own exactly one key. Values are opaque bytes;
// the stores write serialized JSON.
//
// Implementations must make Set atomic per key: a reader observes either the
// previous value or the new one, never a partial write. No ordering is
// promised across keys.
type Medium interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; that is not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key succeeds.
	Remove(ctx context.Context, key string) error

	// Clear removes every key this medium owns.
	Clear(ctx context.Context) error

	// Close releases the medium. Idempotent: multiple calls succeed.
	// After Close, other operations return ErrMediumClosed.
	Close() error
}

// Medium lifecycle errors.
var (
	ErrMediumClosed    = errors.New("medium is closed")
	ErrAlreadyAttached = errors.New("medium is already attached")
)

// Package sqlite implements types.Medium on a SQLite database file. Each
// medium key is one row of the slots table; a Set is a single upsert, so a
// slot is always replaced atomically.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "mockapi.db"

// Backend implements types.Medium using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
	path     string
	now      func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a data directory to open it.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Open is NewBackend followed by Attach.
func Open(ctx context.Context, dataDir string) (*Backend, error) {
	b := NewBackend()
	if err := b.Attach(ctx, dataDir); err != nil {
		return nil, err
	}
	return b, nil
}

// Attach creates dataDir if needed, opens the database and applies the
// schema. Existing slots are kept. Returns types.ErrAlreadyAttached if
// called twice without Close.
func (b *Backend) Attach(ctx context.Context, dataDir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.path = path
	b.attached = true
	return nil
}

// Path returns the database file path, or "" before Attach.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, false, types.ErrMediumClosed
	}

	var value string
	err := b.db.QueryRowContext(ctx, selectSlot, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set upserts the slot for key.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrMediumClosed
	}

	if _, err := b.db.ExecContext(ctx, upsertSlot, key, string(value), types.FormatTime(b.now())); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// Remove deletes the slot for key.
func (b *Backend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrMediumClosed
	}

	if _, err := b.db.ExecContext(ctx, deleteSlot, key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}
	return nil
}

// Clear deletes every slot.
func (b *Backend) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrMediumClosed
	}

	if _, err := b.db.ExecContext(ctx, deleteSlots); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}
	return nil
}

// Close releases the database connection. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

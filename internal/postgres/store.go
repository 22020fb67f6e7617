// Package postgres implements types.Medium on a PostgreSQL table through a
// pgx connection pool. Each medium key is one row of the slots table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexusvpn/mockapi/pkg/types"
)

const (
	createSlots = `CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`
	selectSlot = `SELECT value FROM slots WHERE key = $1`
	upsertSlot = `INSERT INTO slots (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteSlot  = `DELETE FROM slots WHERE key = $1`
	deleteSlots = `DELETE FROM slots`
)

// Store implements types.Medium using PostgreSQL.
type Store struct {
	mu     sync.RWMutex
	pool   *pgxpool.Pool
	now    func() time.Time
	closed bool
}

// New opens a pool for dsn, verifies connectivity and ensures the slots
// table exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, types.ErrPostgresDSN
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createSlots); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{pool: pool, now: time.Now}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, types.ErrMediumClosed
	}

	var value string
	err := s.pool.QueryRow(ctx, selectSlot, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set upserts the slot for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrMediumClosed
	}

	if _, err := s.pool.Exec(ctx, upsertSlot, key, string(value), types.FormatTime(s.now())); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// Remove deletes the slot for key.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrMediumClosed
	}

	if _, err := s.pool.Exec(ctx, deleteSlot, key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}
	return nil
}

// Clear deletes every slot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrMediumClosed
	}

	if _, err := s.pool.Exec(ctx, deleteSlots); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}
	return nil
}

// Close closes the pool. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.pool.Close()
	return nil
}

// Package session implements types.SessionStore on a types.Medium slot.
//
// The store is a test double: logging in never checks credentials and
// always yields types.DemoUser.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// DefaultLocation is returned by RedirectToLogin and Logout when the caller
// gives no destination.
const DefaultLocation = "/"

// Store holds the current user record, mirrored in the medium under
// types.SessionKey.
type Store struct {
	mu      sync.RWMutex
	medium  types.Medium
	current types.Record
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open loads the session persisted in m, if any.
func Open(ctx context.Context, m types.Medium, opts ...Option) (*Store, error) {
	s := &Store{medium: m, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := m.Get(ctx, types.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: loading session: %w", types.ErrStorage, err)
	}
	if ok {
		var rec types.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: session: %w", types.ErrCorrupt, err)
		}
		s.current = rec
	}
	s.logger.Debug("session loaded", zap.Bool("authenticated", s.current != nil))
	return s, nil
}

// IsAuthenticated reports whether a session exists.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Me returns the current user.
func (s *Store) Me(ctx context.Context) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, types.ErrNotAuthenticated
	}
	return decodeUser(s.current)
}

// Record returns a copy of the raw session record, including fields that
// are not part of types.User. ok is false when anonymous.
func (s *Store) Record(ctx context.Context) (types.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone(), s.current != nil
}

// RedirectToLogin replaces any session with the demo identity and returns
// next, or DefaultLocation when next is empty.
func (s *Store) RedirectToLogin(ctx context.Context, next string) (string, error) {
	rec, err := types.ToRecord(types.DemoUser)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, rec); err != nil {
		return "", err
	}
	s.current = rec
	s.logger.Info("demo login", zap.String("email", types.DemoUser.Email))
	return location(next), nil
}

// UpdateMe merges fields over the current user, last write wins per field,
// and persists the result. With no session the record is built from fields
// alone.
func (s *Store) UpdateMe(ctx context.Context, fields types.Record) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.current.Clone()
	if merged == nil {
		merged = make(types.Record, len(fields))
	}
	maps.Copy(merged, fields)

	user, err := decodeUser(merged)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, merged); err != nil {
		return nil, err
	}
	s.current = merged
	s.logger.Debug("session updated", zap.Int("fields", len(fields)))
	return user, nil
}

// Logout removes the session and returns redirect, or DefaultLocation when
// redirect is empty. The slot is removed even while anonymous.
func (s *Store) Logout(ctx context.Context, redirect string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.medium.Remove(ctx, types.SessionKey); err != nil {
		s.logger.Error("removing session failed", zap.Error(err))
		return "", fmt.Errorf("%w: removing session: %w", types.ErrStorage, err)
	}
	if s.current != nil {
		s.current = nil
		s.logger.Info("logged out")
	}
	return location(redirect), nil
}

func (s *Store) persist(ctx context.Context, rec types.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encoding session: %w", types.ErrInvalidData, err)
	}
	if err := s.medium.Set(ctx, types.SessionKey, data); err != nil {
		s.logger.Error("persisting session failed", zap.Error(err))
		return fmt.Errorf("%w: writing session: %w", types.ErrStorage, err)
	}
	return nil
}

func decodeUser(rec types.Record) (*types.User, error) {
	u, err := types.FromRecord[types.User](rec)
	if err != nil {
		return nil, fmt.Errorf("%w: session user: %w", types.ErrInvalidData, err)
	}
	return &u, nil
}

func location(dest string) string {
	if dest == "" {
		return DefaultLocation
	}
	return dest
}

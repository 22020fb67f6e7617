package medium

import (
	"bytes"
	"context"
	"sync"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// Memory keeps slots in a map. Contents vanish with the process; it stands
// in for browser local storage in tests and the memory backend.
type Memory struct {
	mu     sync.RWMutex
	slots  map[string][]byte
	closed bool
}

// NewMemory returns an empty in-memory medium.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Get returns a copy of the value under key.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, false, types.ErrMediumClosed
	}
	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrMediumClosed
	}
	m.slots[key] = bytes.Clone(value)
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrMediumClosed
	}
	delete(m.slots, key)
	return nil
}

// Clear drops every slot.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrMediumClosed
	}
	clear(m.slots)
	return nil
}

// Close marks the medium closed. Idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Len returns the number of stored slots.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}

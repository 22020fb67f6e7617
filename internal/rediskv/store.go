// Package rediskv implements types.Medium on Redis. Each medium key is one
// Redis string under "<namespace>:<key>"; SET replaces it atomically.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// scanBatch is the COUNT hint used when clearing the namespace.
const scanBatch = 100

// Store implements types.Medium using a Redis client.
type Store struct {
	mu        sync.RWMutex
	client    *redis.Client
	namespace string
	logger    *zap.Logger
	closed    bool
}

// New connects to the server described by cfg and verifies it with PING.
func New(ctx context.Context, cfg types.RedisConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Addr == "" {
		return nil, types.ErrRedisAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = types.DefaultRedisNamespace
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis %s: %w", cfg.Addr, err)
	}

	logger.Debug("redis medium connected",
		zap.String("addr", cfg.Addr),
		zap.String("namespace", namespace))

	return &Store{client: client, namespace: namespace, logger: logger}, nil
}

// Key returns the Redis key holding the medium key.
func (s *Store) Key(key string) string {
	return s.namespace + ":" + key
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, types.ErrMediumClosed
	}

	data, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s from redis: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrMediumClosed
	}

	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		s.logger.Error("redis write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("writing %s to redis: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrMediumClosed
	}

	if err := s.client.Del(ctx, s.Key(key)).Err(); err != nil {
		return fmt.Errorf("deleting %s from redis: %w", key, err)
	}
	return nil
}

// Clear deletes every key in the namespace. Keys outside it are untouched.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrMediumClosed
	}

	iter := s.client.Scan(ctx, 0, s.namespace+":*", scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning redis namespace %s: %w", s.namespace, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clearing redis namespace %s: %w", s.namespace, err)
	}
	s.logger.Debug("redis namespace cleared",
		zap.String("namespace", s.namespace),
		zap.Int("keys", len(keys)))
	return nil
}

// Close closes the client. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}

// Package mockapi assembles the Nexus mock backend: a medium, the standard
// entity collections, the session store and the user-invite stub.
//
// A Client replaces a process-wide singleton; construct one at the entry
// point and pass it to whatever needs data access.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/internal/entity"
	"github.com/nexusvpn/mockapi/internal/session"
	"github.com/nexusvpn/mockapi/pkg/types"
)

// Entities holds the typed standard collections.
type Entities struct {
	Server        *entity.Collection[types.Server]
	Subscription  *entity.Collection[types.Subscription]
	Payment       *entity.Collection[types.Payment]
	SupportTicket *entity.Collection[types.SupportTicket]
}

// Client is an open mock backend.
type Client struct {
	Entities Entities
	Auth     *session.Store
	Users    *Users

	mu     sync.Mutex
	medium types.Medium
	extra  map[string]*entity.Store
	now    func() time.Time
	logger *zap.Logger
	closed bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger passed down to every store.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithMedium uses m instead of opening the medium named by the config.
// The client takes ownership and closes m on Close.
func WithMedium(m types.Medium) Option {
	return func(c *Client) { c.medium = m }
}

// Open opens the configured medium and every standard collection. The
// Server collection is seeded with the built-in catalogue when the medium
// has none.
func Open(ctx context.Context, cfg types.Config, opts ...Option) (*Client, error) {
	c := &Client{now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	if c.medium == nil {
		m, err := OpenMedium(ctx, cfg, c.logger)
		if err != nil {
			return nil, err
		}
		c.medium = m
	}

	if err := c.load(ctx); err != nil {
		c.medium.Close()
		return nil, err
	}
	return c, nil
}

// load (re)opens every store from the medium.
func (c *Client) load(ctx context.Context) error {
	sopts := []entity.Option{entity.WithClock(c.now), entity.WithLogger(c.logger)}

	servers, err := entity.OpenCollection(ctx, c.medium, types.ServerCollection, entity.MockServers(), sopts...)
	if err != nil {
		return err
	}
	subs, err := entity.OpenCollection[types.Subscription](ctx, c.medium, types.SubscriptionCollection, nil, sopts...)
	if err != nil {
		return err
	}
	payments, err := entity.OpenCollection[types.Payment](ctx, c.medium, types.PaymentCollection, nil, sopts...)
	if err != nil {
		return err
	}
	tickets, err := entity.OpenCollection[types.SupportTicket](ctx, c.medium, types.SupportTicketCollection, nil, sopts...)
	if err != nil {
		return err
	}
	auth, err := session.Open(ctx, c.medium, session.WithLogger(c.logger))
	if err != nil {
		return err
	}

	c.Entities = Entities{
		Server:        servers,
		Subscription:  subs,
		Payment:       payments,
		SupportTicket: tickets,
	}
	c.Auth = auth
	c.Users = &Users{logger: c.logger}
	c.extra = make(map[string]*entity.Store)
	return nil
}

// Collection returns the raw store for name. Standard names resolve to the
// store behind the typed collection; any other name is opened empty on
// first use and kept for the life of the client. Its slot is written only
// once a record is created.
func (c *Client) Collection(ctx context.Context, name string) (*entity.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case types.ServerCollection:
		return c.Entities.Server.Store(), nil
	case types.SubscriptionCollection:
		return c.Entities.Subscription.Store(), nil
	case types.PaymentCollection:
		return c.Entities.Payment.Store(), nil
	case types.SupportTicketCollection:
		return c.Entities.SupportTicket.Store(), nil
	}
	if s, ok := c.extra[name]; ok {
		return s, nil
	}
	s, err := entity.Open(ctx, c.medium, name, nil,
		entity.WithClock(c.now), entity.WithLogger(c.logger), entity.WithLazySeed())
	if err != nil {
		return nil, err
	}
	c.extra[name] = s
	return s, nil
}

// Medium returns the medium the client writes to.
func (c *Client) Medium() types.Medium {
	return c.medium
}

// Reset clears the medium and reopens every store, restoring the seeded
// state. The session is cleared as well.
func (c *Client) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.medium.Clear(ctx); err != nil {
		return fmt.Errorf("%w: clearing medium: %w", types.ErrStorage, err)
	}
	if err := c.load(ctx); err != nil {
		return err
	}
	c.logger.Info("mock data reset")
	return nil
}

// Close closes the medium. Idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.medium.Close(); err != nil && !errors.Is(err, types.ErrMediumClosed) {
		return fmt.Errorf("closing medium: %w", err)
	}
	return nil
}

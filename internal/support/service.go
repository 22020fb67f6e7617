// Package support files and lists support tickets for the signed-in user.
package support

import (
	"context"

	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// TicketRequest is what a user submits. Empty Category and Priority take
// the defaults.
type TicketRequest struct {
	Subject  string
	Message  string
	Category string
	Priority string
}

// Service opens tickets in the SupportTicket collection.
type Service struct {
	tickets types.Collection[types.SupportTicket]
	auth    types.SessionStore
	logger  *zap.Logger
}

// NewService returns a Service. A nil logger discards everything.
func NewService(tickets types.Collection[types.SupportTicket], auth types.SessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{tickets: tickets, auth: auth, logger: logger}
}

// Open files a new ticket owned by the current user with status open.
func (s *Service) Open(ctx context.Context, req TicketRequest) (types.SupportTicket, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return types.SupportTicket{}, err
	}

	ticket := types.SupportTicket{
		UserEmail: user.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Priority:  req.Priority,
		Status:    types.TicketOpen,
	}
	if ticket.Category == "" {
		ticket.Category = types.TicketOther
	}
	if ticket.Priority == "" {
		ticket.Priority = types.PriorityMedium
	}
	if err := ticket.Validate(); err != nil {
		return types.SupportTicket{}, err
	}

	created, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		return types.SupportTicket{}, err
	}
	s.logger.Info("ticket opened",
		zap.Int("id", created.ID),
		zap.String("category", created.Category),
		zap.String("priority", created.Priority))
	return created, nil
}

// Tickets returns the current user's tickets, newest first.
func (s *Service) Tickets(ctx context.Context) ([]types.SupportTicket, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	return s.tickets.Filter(ctx, types.Record{"user_email": user.Email},
		types.ListOptions{Sort: "-created_date"})
}

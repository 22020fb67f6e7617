package types

import "fmt"

// Ticket categories.
const (
	TicketTechnical = "technical"
	TicketBilling   = "billing"
	TicketAccount   = "account"
	TicketOther     = "other"
)

// Ticket priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Ticket statuses.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

var (
	validTicketCategories = map[string]bool{
		TicketTechnical: true,
		TicketBilling:   true,
		TicketAccount:   true,
		TicketOther:     true,
	}
	validTicketPriorities = map[string]bool{
		PriorityLow:    true,
		PriorityMedium: true,
		PriorityHigh:   true,
	}
	validTicketStatuses = map[string]bool{
		TicketOpen:       true,
		TicketInProgress: true,
		TicketResolved:   true,
		TicketClosed:     true,
	}
)

// SupportTicket is a user-filed support request.
type SupportTicket struct {
	Meta
	UserEmail string `json:"user_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
}

// Validate checks required fields and enumerations. Empty enumerations are
// accepted; the support service fills defaults before creating a ticket.
func (t SupportTicket) Validate() error {
	switch {
	case t.Subject == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidData)
	case t.Message == "":
		return fmt.Errorf("%w: message is required", ErrInvalidData)
	case t.Category != "" && !validTicketCategories[t.Category]:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidData, t.Category)
	case t.Priority != "" && !validTicketPriorities[t.Priority]:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidData, t.Priority)
	case t.Status != "" && !validTicketStatuses[t.Status]:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidData, t.Status)
	}
	return nil
}

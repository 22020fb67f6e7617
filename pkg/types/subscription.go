package types

import (
	"fmt"
	"time"
)

// Plan identifiers shared by subscriptions and payments.
const (
	PlanFree     = "free"
	PlanBasic    = "basic"
	PlanPro      = "pro"
	PlanUltimate = "ultimate"
)

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

var validSubscriptionStatuses = map[string]bool{
	SubscriptionActive:    true,
	SubscriptionCancelled: true,
	SubscriptionExpired:   true,
}

// Subscription grants a user a plan for a date range.
type Subscription struct {
	Meta

	// UserEmail identifies the owner. It is a plain string; no user
	// record is required to exist.
	UserEmail string `json:"user_email"`

	// Plan is one of the Plan constants.
	Plan string `json:"plan"`

	// Status is one of the Subscription status constants.
	Status string `json:"status"`

	// StartDate and EndDate are calendar dates in DateLayout.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// AutoRenew is set for subscriptions created by a purchase.
	AutoRenew bool `json:"auto_renew"`
}

// Validate checks required fields and date formats.
// Returns an error wrapping ErrInvalidData on failure.
func (s Subscription) Validate() error {
	if s.UserEmail == "" {
		return fmt.Errorf("%w: user_email is required", ErrInvalidData)
	}
	if s.Plan == "" {
		return fmt.Errorf("%w: plan is required", ErrInvalidData)
	}
	if s.Status != "" && !validSubscriptionStatuses[s.Status] {
		return fmt.Errorf("%w: unknown subscription status %q", ErrInvalidData, s.Status)
	}
	start, err := parseOptionalDate(s.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date: %v", ErrInvalidData, err)
	}
	end, err := parseOptionalDate(s.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end_date: %v", ErrInvalidData, err)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("%w: end_date precedes start_date", ErrInvalidData)
	}
	return nil
}

// IsActive reports whether the subscription is active.
func (s Subscription) IsActive() bool {
	return s.Status == SubscriptionActive
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

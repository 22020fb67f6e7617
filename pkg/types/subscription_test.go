package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionValidate(t *testing.T) {
	tests := []struct {
		name    string
		sub     Subscription
		wantErr bool
	}{
		{
			name: "active monthly subscription",
			sub: Subscription{
				UserEmail: "demo@nexusvpn.com",
				Plan:      PlanPro,
				Status:    SubscriptionActive,
				StartDate: "2025-01-31",
				EndDate:   "2025-02-28",
				AutoRenew: true,
			},
		},
		{
			name: "dates are optional",
			sub:  Subscription{UserEmail: "a@b.c", Plan: PlanBasic},
		},
		{
			name:    "missing email",
			sub:     Subscription{Plan: PlanBasic},
			wantErr: true,
		},
		{
			name:    "missing plan",
			sub:     Subscription{UserEmail: "a@b.c"},
			wantErr: true,
		},
		{
			name:    "unknown status",
			sub:     Subscription{UserEmail: "a@b.c", Plan: PlanBasic, Status: "paused"},
			wantErr: true,
		},
		{
			name:    "malformed start date",
			sub:     Subscription{UserEmail: "a@b.c", Plan: PlanBasic, StartDate: "31/01/2025"},
			wantErr: true,
		},
		{
			name:    "end before start",
			sub:     Subscription{UserEmail: "a@b.c", Plan: PlanBasic, StartDate: "2025-02-01", EndDate: "2025-01-01"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidData)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubscriptionIsActive(t *testing.T) {
	assert.True(t, Subscription{Status: SubscriptionActive}.IsActive())
	assert.False(t, Subscription{Status: SubscriptionExpired}.IsActive())
	assert.False(t, Subscription{}.IsActive())
}

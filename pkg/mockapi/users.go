package mockapi

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// Users is the user-management stub. No invitation is delivered or stored.
type Users struct {
	logger *zap.Logger
}

// InviteUser pretends to invite email with role, or types.RoleUser when role
// is empty. It succeeds for any non-empty email.
func (u *Users) InviteUser(ctx context.Context, email, role string) (*types.Invitation, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", types.ErrInvalidData)
	}
	if role == "" {
		role = types.RoleUser
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating invitation id: %w", err)
	}
	u.logger.Info("invitation stubbed", zap.String("email", email), zap.String("role", role))
	return &types.Invitation{ID: id.String(), Email: email, Role: role, Success: true}, nil
}

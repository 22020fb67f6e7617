// Package billing simulates the plan purchase flow on top of the Payment
// and Subscription collections. No money moves; every purchase succeeds.
package billing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// DefaultHistoryLimit is the number of payments History returns when asked
// for zero.
const DefaultHistoryLimit = 5

// PurchaseRequest selects what to buy.
type PurchaseRequest struct {
	Plan   string
	Period string
	Method string
}

// Receipt holds the records written by a purchase.
type Receipt struct {
	Payment      types.Payment      `json:"payment"`
	Subscription types.Subscription `json:"subscription"`
}

// Service runs purchases for the signed-in user.
type Service struct {
	payments      types.Collection[types.Payment]
	subscriptions types.Collection[types.Subscription]
	auth          types.SessionStore
	now           func() time.Time
	logger        *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for transaction ids and subscription dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService returns a Service writing to the given collections.
func NewService(payments types.Collection[types.Payment], subscriptions types.Collection[types.Subscription], auth types.SessionStore, opts ...Option) *Service {
	s := &Service{
		payments:      payments,
		subscriptions: subscriptions,
		auth:          auth,
		now:           time.Now,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Purchase records a completed payment for the request and an active
// auto-renewing subscription starting today. The free plan cannot be
// purchased.
func (s *Service) Purchase(ctx context.Context, req PurchaseRequest) (*Receipt, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}

	plan, ok := LookupPlan(req.Plan)
	if !ok {
		return nil, fmt.Errorf("%w: unknown plan %q", types.ErrInvalidData, req.Plan)
	}
	if plan.ID == types.PlanFree {
		return nil, fmt.Errorf("%w: the free plan needs no purchase", types.ErrInvalidData)
	}
	if !types.IsPaymentMethod(req.Method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", types.ErrInvalidData, req.Method)
	}
	amount, err := plan.Charge(req.Period)
	if err != nil {
		return nil, err
	}
	months, _ := Months(req.Period)

	now := s.now().UTC()
	payment, err := s.payments.Create(ctx, types.Payment{
		UserEmail:     user.Email,
		Amount:        amount,
		Plan:          plan.ID,
		PaymentMethod: req.Method,
		Status:        types.PaymentCompleted,
		TransactionID: "TXN" + strconv.FormatInt(now.UnixMilli(), 10),
	})
	if err != nil {
		return nil, fmt.Errorf("recording payment: %w", err)
	}

	sub, err := s.subscriptions.Create(ctx, types.Subscription{
		UserEmail: user.Email,
		Plan:      plan.ID,
		Status:    types.SubscriptionActive,
		StartDate: now.Format(types.DateLayout),
		EndDate:   now.AddDate(0, months, 0).Format(types.DateLayout),
		AutoRenew: true,
	})
	if err != nil {
		return nil, fmt.Errorf("recording subscription: %w", err)
	}

	s.logger.Info("plan purchased",
		zap.String("email", user.Email),
		zap.String("plan", plan.ID),
		zap.String("period", req.Period),
		zap.Float64("amount", amount),
		zap.String("transaction_id", payment.TransactionID))

	return &Receipt{Payment: payment, Subscription: sub}, nil
}

// CurrentPlan returns the plan of the user's newest active subscription,
// or types.PlanFree when there is none.
func (s *Service) CurrentPlan(ctx context.Context) (string, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return "", err
	}
	subs, err := s.subscriptions.Filter(ctx, types.Record{
		"user_email": user.Email,
		"status":     types.SubscriptionActive,
	}, types.ListOptions{Sort: "-created_date", Limit: 1})
	if err != nil {
		return "", err
	}
	if len(subs) == 0 {
		return types.PlanFree, nil
	}
	return subs[0].Plan, nil
}

// History returns the user's payments, newest first. A limit of zero or
// less means DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, limit int) ([]types.Payment, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.payments.Filter(ctx, types.Record{"user_email": user.Email},
		types.ListOptions{Sort: "-created_date", Limit: limit})
}

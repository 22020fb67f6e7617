package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/nexusvpn/mockapi/internal/entity"
	"github.com/nexusvpn/mockapi/internal/medium"
	"github.com/nexusvpn/mockapi/internal/session"
	"github.com/nexusvpn/mockapi/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var purchaseTime = time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	auth     *session.Store
	payments *entity.Collection[types.Payment]
	subs     *entity.Collection[types.Subscription]
}

func newFixture(t *testing.T, loggedIn bool) fixture {
	t.Helper()
	ctx := context.Background()
	m := medium.NewMemory()

	payments, err := entity.OpenCollection[types.Payment](ctx, m, types.PaymentCollection, nil)
	require.NoError(t, err)
	subs, err := entity.OpenCollection[types.Subscription](ctx, m, types.SubscriptionCollection, nil)
	require.NoError(t, err)
	auth, err := session.Open(ctx, m)
	require.NoError(t, err)
	if loggedIn {
		_, err := auth.RedirectToLogin(ctx, "")
		require.NoError(t, err)
	}

	svc := NewService(payments, subs, auth,
		WithClock(func() time.Time { return purchaseTime }),
		WithLogger(zaptest.NewLogger(t)))
	return fixture{svc: svc, auth: auth, payments: payments, subs: subs}
}

func TestPurchaseYearly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	r, err := f.svc.Purchase(ctx, PurchaseRequest{Plan: types.PlanPro, Period: PeriodYearly, Method: types.PaymentPayPal})
	require.NoError(t, err)

	assert.Equal(t, 1, r.Payment.ID)
	assert.Equal(t, "demo@nexusvpn.com", r.Payment.UserEmail)
	assert.Equal(t, 71.88, r.Payment.Amount)
	assert.Equal(t, types.PaymentCompleted, r.Payment.Status)
	assert.Equal(t, types.PaymentPayPal, r.Payment.PaymentMethod)
	assert.Equal(t, "TXN1706702400000", r.Payment.TransactionID)

	assert.Equal(t, types.PlanPro, r.Subscription.Plan)
	assert.Equal(t, types.SubscriptionActive, r.Subscription.Status)
	assert.Equal(t, "2024-01-31", r.Subscription.StartDate)
	assert.Equal(t, "2025-01-31", r.Subscription.EndDate)
	assert.True(t, r.Subscription.AutoRenew)

	stored, err := f.subs.Get(ctx, r.Subscription.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Subscription, stored)
}

func TestPurchaseMonthlyEndDate(t *testing.T) {
	f := newFixture(t, true)
	r, err := f.svc.Purchase(context.Background(), PurchaseRequest{Plan: types.PlanBasic, Period: PeriodMonthly, Method: types.PaymentCard})
	require.NoError(t, err)
	assert.Equal(t, 4.99, r.Payment.Amount)
	// time.AddDate normalizes 2024-02-31 to 2024-03-02.
	assert.Equal(t, "2024-03-02", r.Subscription.EndDate)
}

func TestPurchaseRejects(t *testing.T) {
	tests := []struct {
		name string
		req  PurchaseRequest
	}{
		{"unknown plan", PurchaseRequest{Plan: "enterprise", Period: PeriodMonthly, Method: types.PaymentCard}},
		{"free plan", PurchaseRequest{Plan: types.PlanFree, Period: PeriodMonthly, Method: types.PaymentCard}},
		{"unknown method", PurchaseRequest{Plan: types.PlanPro, Period: PeriodMonthly, Method: "cheque"}},
		{"unknown period", PurchaseRequest{Plan: types.PlanPro, Period: "weekly", Method: types.PaymentCard}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, true)
			_, err := f.svc.Purchase(ctx, tt.req)
			assert.ErrorIs(t, err, types.ErrInvalidData)
			assert.Equal(t, 0, f.payments.Store().Len())
			assert.Equal(t, 0, f.subs.Store().Len())
		})
	}
}

func TestRequiresSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.svc.Purchase(ctx, PurchaseRequest{Plan: types.PlanPro, Period: PeriodMonthly, Method: types.PaymentCard})
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	_, err = f.svc.CurrentPlan(ctx)
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	_, err = f.svc.History(ctx, 0)
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestCurrentPlan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	plan, err := f.svc.CurrentPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.PlanFree, plan)

	_, err = f.svc.Purchase(ctx, PurchaseRequest{Plan: types.PlanBasic, Period: PeriodMonthly, Method: types.PaymentCard})
	require.NoError(t, err)
	r, err := f.svc.Purchase(ctx, PurchaseRequest{Plan: types.PlanUltimate, Period: PeriodYearly, Method: types.PaymentCrypto})
	require.NoError(t, err)

	plan, err = f.svc.CurrentPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.PlanUltimate, plan, "newest active subscription wins")

	_, err = f.subs.Update(ctx, r.Subscription.ID, types.Record{"status": types.SubscriptionCancelled})
	require.NoError(t, err)
	plan, err = f.svc.CurrentPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.PlanBasic, plan)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, err := f.payments.Create(ctx, types.Payment{UserEmail: "other@example.com", Amount: 1, Plan: types.PlanBasic, PaymentMethod: types.PaymentCard})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err := f.svc.Purchase(ctx, PurchaseRequest{Plan: types.PlanPro, Period: PeriodMonthly, Method: types.PaymentCard})
		require.NoError(t, err)
	}

	history, err := f.svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, DefaultHistoryLimit)
	assert.Equal(t, 8, history[0].ID, "newest first")
	for _, p := range history {
		assert.Equal(t, "demo@nexusvpn.com", p.UserEmail)
	}

	history, err = f.svc.History(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, history, 7)
}

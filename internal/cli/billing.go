package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/internal/billing"
	"github.com/nexusvpn/mockapi/pkg/mockapi"
	"github.com/nexusvpn/mockapi/pkg/types"
)

func (a *app) billing(client *mockapi.Client) *billing.Service {
	return billing.NewService(client.Entities.Payment, client.Entities.Subscription, client.Auth,
		billing.WithLogger(a.logger))
}

func newPurchaseCmd(a *app) *cobra.Command {
	var req billing.PurchaseRequest
	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Buy a plan for the signed-in user (simulated)",
		Long: `Purchase records a completed payment and an active, auto-renewing
subscription. No payment provider is contacted.

Plans:   basic, pro, ultimate
Periods: monthly, yearly
Methods: card, paypal, crypto, apple_pay, google_pay`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			receipt, err := a.billing(client).Purchase(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, receipt)
		},
	}
	cmd.Flags().StringVar(&req.Plan, "plan", types.PlanPro, "plan to buy")
	cmd.Flags().StringVar(&req.Period, "period", billing.PeriodYearly, "billing period")
	cmd.Flags().StringVar(&req.Method, "method", types.PaymentCard, "payment method")
	return cmd
}

// planStatus is printed by the plan command.
type planStatus struct {
	Current string          `json:"current"`
	History []types.Payment `json:"payments,omitempty"`
	Catalog []billing.Plan  `json:"catalog,omitempty"`
}

func newPlanCmd(a *app) *cobra.Command {
	var history int
	var catalog bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the signed-in user's plan and recent payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			svc := a.billing(client)
			current, err := svc.CurrentPlan(cmd.Context())
			if err != nil {
				return err
			}
			status := planStatus{Current: current}
			if history >= 0 {
				if status.History, err = svc.History(cmd.Context(), history); err != nil {
					return err
				}
			}
			if catalog {
				status.Catalog = billing.Catalog()
			}
			return printJSON(cmd, status)
		},
	}
	cmd.Flags().IntVar(&history, "history", billing.DefaultHistoryLimit, "recent payments to include; negative for none")
	cmd.Flags().BoolVar(&catalog, "catalog", false, "include the plan price list")
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/internal/support"
	"github.com/nexusvpn/mockapi/pkg/mockapi"
)

func (a *app) support(client *mockapi.Client) *support.Service {
	return support.NewService(client.Entities.SupportTicket, client.Auth, a.logger)
}

func newTicketCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Open and list support tickets",
	}
	cmd.AddCommand(newTicketOpenCmd(a), newTicketListCmd(a))
	return cmd
}

func newTicketOpenCmd(a *app) *cobra.Command {
	var req support.TicketRequest
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a support ticket for the signed-in user",
		Long: `Open files a ticket with status open.

Categories: technical, billing, account, other (default)
Priorities: low, medium (default), high`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ticket, err := a.support(client).Open(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, ticket)
		},
	}
	cmd.Flags().StringVar(&req.Subject, "subject", "", "ticket subject (required)")
	cmd.Flags().StringVar(&req.Message, "message", "", "ticket body (required)")
	cmd.Flags().StringVar(&req.Category, "category", "", "ticket category")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "ticket priority")
	return cmd
}

func newTicketListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the signed-in user's tickets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			tickets, err := a.support(client).Tickets(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, tickets)
		},
	}
}

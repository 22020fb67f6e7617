package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/pkg/types"
)

func newInviteCmd(a *app) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "invite <email>",
		Short: "Pretend to invite a user; nothing is sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			inv, err := client.Users.InviteUser(cmd.Context(), args[0], role)
			if err != nil {
				return err
			}
			return printJSON(cmd, inv)
		},
	}
	cmd.Flags().StringVar(&role, "role", types.RoleUser, "role to grant")
	return cmd
}

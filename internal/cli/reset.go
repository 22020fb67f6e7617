package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/pkg/types"
)

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase all mock data and restore the built-in servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.Reset(cmd.Context()); err != nil {
				return err
			}
			servers, err := client.Collection(cmd.Context(), types.ServerCollection)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"reset": true, "servers": servers.Len()})
		},
	}
}

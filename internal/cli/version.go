package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/pkg/mockapi"
)

const modulePath = "github.com/nexusvpn/mockapi"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mockapi version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mockapi v%s\nmodule: %s\n", mockapi.Version, modulePath)
			return nil
		},
	}
}

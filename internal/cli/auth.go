package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// navigation is printed by login and logout.
type navigation struct {
	Location string      `json:"location"`
	User     *types.User `json:"user,omitempty"`
}

func newLoginCmd(a *app) *cobra.Command {
	var next string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as the demo user (test double, no credentials)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			location, err := client.Auth.RedirectToLogin(cmd.Context(), next)
			if err != nil {
				return err
			}
			me, err := client.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, navigation{Location: location, User: me})
		},
	}
	cmd.Flags().StringVar(&next, "next", "", "location to return to after login (default /)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	var redirect string
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			location, err := client.Auth.Logout(cmd.Context(), redirect)
			if err != nil {
				return err
			}
			return printJSON(cmd, navigation{Location: location})
		},
	}
	cmd.Flags().StringVar(&redirect, "redirect", "", "location to go to after logout (default /)")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			me, err := client.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, me)
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	var fullName string
	var set []string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in user's profile",
		Long: `Profile merges the given fields into the session user.

Example:
  mockapi profile --full-name "Ada Lovelace"
  mockapi profile --set theme=dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFilter(set)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("full-name") {
				fields["full_name"] = fullName
			}
			if len(fields) == 0 {
				return fmt.Errorf("%w: nothing to update (use --full-name or --set)", types.ErrInvalidData)
			}

			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if !client.Auth.IsAuthenticated(cmd.Context()) {
				return types.ErrNotAuthenticated
			}
			me, err := client.Auth.UpdateMe(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return printJSON(cmd, me)
		},
	}
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringArrayVar(&set, "set", nil, "extra field as key=value (repeatable)")
	return cmd
}

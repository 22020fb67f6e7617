package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var opts types.ListOptions

	cmd := &cobra.Command{
		Use:   "list <collection> [key=value...]",
		Short: "List records, optionally filtered",
		Long: `List prints the records of a collection as JSON.

Filters are key=value pairs; a record matches when every field equals the
given value. Values are parsed as JSON when possible, so load=35 matches the
number 35 and is_premium=true the boolean.

Standard collections: Server, Subscription, Payment, SupportTicket

Example:
  mockapi list Server
  mockapi list Server country_code=JP --sort ping
  mockapi list Payment user_email=demo@nexusvpn.com --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseFilter(args[1:])
			if err != nil {
				return err
			}
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			store, err := client.Collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			records, err := store.Filter(cmd.Context(), query, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		},
	}
	cmd.Flags().StringVar(&opts.Sort, "sort", types.DefaultSort, "sort field; prefix with - for descending")
	cmd.Flags().IntVar(&opts.Limit, "limit", types.DefaultLimit, "maximum records; negative for all")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Print one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			store, err := client.Collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			record, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, record)
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <collection> <json>",
		Short: "Create a record from a JSON object",
		Long: `Create appends a record to the collection. The id, created_date and
updated_date fields are assigned by the store.

Example:
  mockapi create Server '{"country":"Italy","country_code":"IT","city":"Rome","load":10,"ping":20}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(args[1])
			if err != nil {
				return err
			}
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			store, err := client.Collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			record, err := store.Create(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return printJSON(cmd, record)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <collection> <id> <json>",
		Short: "Merge a JSON object into a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			fields, err := parseFields(args[2])
			if err != nil {
				return err
			}
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			store, err := client.Collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			record, err := store.Update(cmd.Context(), id, fields)
			if err != nil {
				return err
			}
			return printJSON(cmd, record)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete a record; deleting a missing id succeeds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			store, err := client.Collection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"deleted": id, "collection": args[0]})
		},
	}
}

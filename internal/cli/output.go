package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemErr("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// parseFilter turns key=value arguments into a query. Values that parse as
// JSON keep their JSON type (load=35 is a number, is_premium=true a bool);
// anything else is a string.
func parseFilter(args []string) (types.Record, error) {
	query := make(types.Record, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid filter %q (expected key=value)", types.ErrInvalidData, arg)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		query[key] = parsed
	}
	return query, nil
}

// parseFields decodes a JSON object argument.
func parseFields(arg string) (types.Record, error) {
	var fields types.Record
	if err := json.Unmarshal([]byte(arg), &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: expected a JSON object, got %q", types.ErrInvalidData, arg)
	}
	return fields, nil
}

// parseID parses a record id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", types.ErrInvalidData, arg)
	}
	return id, nil
}

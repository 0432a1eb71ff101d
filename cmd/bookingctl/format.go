package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staybook/staybook-api/internal/domain/booking"
)

func formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <field> <raw>",
		Short: "Print the value a field stores for raw input",
		Example: `  bookingctl format cardNumber 4111111111111111
  bookingctl format cvv 12a3b4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := booking.ParseField(args[0])
			if !ok {
				return fmt.Errorf("unknown field %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), field.Format(args[1]))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookingctl",
		Short: "Run the booking form pipeline from the command line",
		Long: `bookingctl drives the Staybook booking form without a browser.

It formats single field inputs, validates a whole form, and submits a
booking to the booking service, printing what the form would show.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		formatCmd(),
		validateCmd(),
		submitCmd(),
	)

	return rootCmd
}

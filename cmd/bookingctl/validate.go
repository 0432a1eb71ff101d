package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staybook/staybook-api/internal/domain/booking"
)

var errInvalidForm = errors.New("form is invalid")

func validateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a filled-in booking form",
		Long: `Read a JSON object of field name to raw input, apply each input the way
the form does, and print every validation error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			f := booking.NewForm("cli", staticPage(inputs["propertyId"]), nil, booking.FormOptions{})
			defer f.Close()
			if err := fillForm(f, inputs); err != nil {
				return err
			}

			errs := booking.Validate(f.Snapshot())
			out := cmd.OutOrStdout()
			if errs.Empty() {
				fmt.Fprintln(out, "valid")
				return nil
			}
			fmt.Fprintln(out, "invalid:")
			printErrors(out, errs)
			return errInvalidForm
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON form inputs, - for stdin")

	return cmd
}

// staticPage is a page that never navigates.
type staticPage string

func (p staticPage) Navigate(string) {}

func (p staticPage) CurrentPropertyID() string { return string(p) }

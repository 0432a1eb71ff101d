package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/staybook/staybook-api/internal/domain/booking"
	"github.com/staybook/staybook-api/internal/pkg/bookingapi"
)

func submitCmd() *cobra.Command {
	var (
		file       string
		baseURL    string
		token      string
		propertyID string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Fill in the booking form and submit it",
		Long: `Read a JSON object of field name to raw input, fill in the form, and submit it
to the booking service. Prints the confirmation path on success.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if propertyID == "" {
				propertyID = inputs["propertyId"]
			}
			if propertyID == "" {
				return booking.ErrMissingProperty
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client := bookingapi.NewClient(baseURL, token, timeout, "Staybook/1.0 bookingctl")
			return runSubmit(ctx, cmd, client, propertyID, inputs)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON form inputs, - for stdin")
	cmd.Flags().StringVar(&baseURL, "base-url", os.Getenv("BOOKING_API_BASE_URL"), "Booking service base URL")
	cmd.Flags().StringVar(&token, "token", os.Getenv("BOOKING_API_TOKEN"), "Booking service bearer token")
	cmd.Flags().StringVar(&propertyID, "property", "", "Property to book (defaults to propertyId in the input)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Booking request timeout")

	return cmd
}

func runSubmit(ctx context.Context, cmd *cobra.Command, client booking.BookingClient, propertyID string, inputs map[string]string) error {
	out := cmd.OutOrStdout()

	f := booking.NewForm("cli", staticPage(propertyID), client, booking.FormOptions{})
	defer f.Close()
	if err := fillForm(f, inputs); err != nil {
		return err
	}

	res, err := f.Submit(ctx)
	if err != nil {
		return err
	}
	if res.Invalid() {
		fmt.Fprintln(out, "invalid:")
		printErrors(out, res.Errors)
		return errInvalidForm
	}

	switch res.State.Status {
	case booking.StatusSucceeded:
		fmt.Fprintf(out, "booked %s\n", res.State.BookingID)
		fmt.Fprintf(out, "confirmation: %s\n", booking.ConfirmationPath(res.State.BookingID))
		return nil
	default:
		return fmt.Errorf("booking failed: %s", res.State.Message)
	}
}

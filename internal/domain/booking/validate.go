package booking

import (
	"time"

	playground "github.com/go-playground/validator/v10"

	"github.com/staybook/staybook-api/internal/pkg/validator"
)

// FieldErrors maps a field wire name to a readable message. A missing key means the field
// is currently valid.
type FieldErrors map[string]string

// Empty reports whether no field has an error.
func (e FieldErrors) Empty() bool { return len(e) == 0 }

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

const tagAfterCheckIn = "after_checkin"

var fieldMessages = map[string]map[string]string{
	"firstName":      {"notblank": "First name is required"},
	"lastName":       {"notblank": "Last name is required"},
	"email":          {"notblank": "Email is required", "loose_email": "Email is invalid"},
	"phoneNumber":    {"notblank": "Phone number is required"},
	"cardNumber":     {"notblank": "Card number is required", "card_number": "Card number must be 16 digits"},
	"expirationDate": {"notblank": "Expiration date is required", "card_expiry": "Expiration date must be in MM/YY format"},
	"cvv":            {"notblank": "CVV is required", "cvv": "CVV must be 3 or 4 digits"},
	"billingAddress": {"notblank": "Billing address is required"},
	"checkInDate":    {"required": "Check-in date is required"},
	"checkOutDate": {
		"required":      "Check-out date is required",
		tagAfterCheckIn: "Check-out date must be after check-in date",
	},
}

func init() {
	validator.Engine().RegisterStructValidation(validateStayDates, FormSnapshot{})
}

// validateStayDates attaches the checkout-after-checkin rule to checkOutDate. Dates that
// are missing or do not parse are left to the per-field rules.
func validateStayDates(sl playground.StructLevel) {
	s := sl.Current().Interface().(FormSnapshot)
	if s.CheckInDate == "" || s.CheckOutDate == "" {
		return
	}
	in, okIn := ParseDate(s.CheckInDate)
	out, okOut := ParseDate(s.CheckOutDate)
	if !okIn || !okOut {
		return
	}
	if !out.After(in) {
		sl.ReportError(s.CheckOutDate, "checkOutDate", "CheckOutDate", tagAfterCheckIn, "")
	}
}

// Validate checks a complete snapshot and returns every field error. It is pure: the same
// snapshot always yields the same errors.
func Validate(s FormSnapshot) FieldErrors {
	errs := FieldErrors{}
	for _, fe := range validator.ValidationErrors(s) {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		errs[field] = msg
	}
	return errs
}

// ParseDate accepts an ISO calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

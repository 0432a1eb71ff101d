package booking

import "errors"

var (
	ErrFormNotFound     = errors.New("booking form not found")
	ErrUnknownField     = errors.New("unknown booking form field")
	ErrFieldReadOnly    = errors.New("field cannot be edited")
	ErrFormLocked       = errors.New("booking form is locked while a booking is submitted or confirmed")
	ErrSubmitInProgress = errors.New("a booking request is already in flight")
	ErrAlreadyBooked    = errors.New("booking already confirmed")
	ErrFormClosed       = errors.New("booking form is closed")
	ErrMissingProperty  = errors.New("property id is required")
)

// Messages shown when the booking service gives no usable message.
const (
	MsgSubmitFailed    = "Failed to submit booking. Please try again."
	MsgUnexpectedError = "An unexpected error occurred. Please try again."
)

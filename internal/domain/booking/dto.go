package booking

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Guest count bounds shown by the form's number input. They are hints only.
const (
	minGuestsHint = 1
	maxGuestsHint = 10
)

// MountRequest represents a form mount request from the frontend.
type MountRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

// InputRequest carries one input event. Value may be a JSON string or number.
type InputRequest struct {
	Value json.RawMessage `json:"value"`
}

var errBadInputValue = errors.New("value must be a string or a number")

// Raw returns the input as the text a browser field would hold.
func (r InputRequest) Raw() (string, error) {
	v := strings.TrimSpace(string(r.Value))
	if v == "" || v == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(r.Value, &n); err == nil {
		return n.String(), nil
	}
	return "", errBadInputValue
}

// FormHints mirrors the min/max attributes of the form's date and guest inputs.
type FormHints struct {
	MinCheckInDate  string `json:"minCheckInDate"`
	MinCheckOutDate string `json:"minCheckOutDate"`
	MinGuests       int    `json:"minGuests"`
	MaxGuests       int    `json:"maxGuests"`
}

// FormResponse represents a booking form to the frontend.
type FormResponse struct {
	ID     string          `json:"id"`
	Values map[string]any  `json:"values"`
	Errors FieldErrors     `json:"errors"`
	State  SubmissionState `json:"state"`
	Hints  FormHints       `json:"hints"`
}

// InputResponse is returned after an input event.
type InputResponse struct {
	Field string       `json:"field"`
	Value string       `json:"value"`
	Form  FormResponse `json:"form"`
}

// NewFormResponse renders a form as of now.
func NewFormResponse(f *Form, now time.Time) FormResponse {
	values, errs, state := f.Inspect()

	today := now.Format(time.DateOnly)
	minCheckOut := today
	if values.CheckInDate != "" {
		minCheckOut = values.CheckInDate
	}

	return FormResponse{
		ID:     f.ID(),
		Values: values.Values(),
		Errors: errs,
		State:  state,
		Hints: FormHints{
			MinCheckInDate:  today,
			MinCheckOutDate: minCheckOut,
			MinGuests:       minGuestsHint,
			MaxGuests:       maxGuestsHint,
		},
	}
}

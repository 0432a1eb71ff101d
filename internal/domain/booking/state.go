package booking

// Status is the phase of a form's submission lifecycle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// allowedTransitions lists the statuses reachable from each status. Failed behaves like
// Idle for the next submit attempt.
var allowedTransitions = map[Status][]Status{
	StatusIdle:       {StatusSubmitting},
	StatusSubmitting: {StatusSucceeded, StatusFailed},
	StatusFailed:     {StatusSubmitting},
	StatusSucceeded:  {},
}

func canTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SubmissionState is the observable submission state of one form.
// BookingID is set only when Succeeded, Message only when Failed.
type SubmissionState struct {
	Status    Status `json:"status"`
	BookingID string `json:"bookingId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// CanSubmit reports whether a submit attempt would be accepted.
func (s SubmissionState) CanSubmit() bool {
	return s.Status == StatusIdle || s.Status == StatusFailed
}

// Submitting reports whether a booking request is in flight.
func (s SubmissionState) Submitting() bool {
	return s.Status == StatusSubmitting
}

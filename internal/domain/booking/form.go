package booking

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/staybook/staybook-api/internal/pkg/bookingapi"
	"github.com/staybook/staybook-api/internal/pkg/logger"
)

// DefaultNavigationDelay is how long the success view stays up before the form navigates
// to the confirmation page.
const DefaultNavigationDelay = 2 * time.Second

// PageContext is what the surrounding page gives a form: the property being booked and a
// way to move the user to another view.
type PageContext interface {
	Navigate(path string)
	CurrentPropertyID() string
}

// BookingClient sends a booking to the remote booking service.
type BookingClient interface {
	CreateBooking(ctx context.Context, req bookingapi.BookingRequest) (bookingapi.Result, error)
}

// FormOptions tunes a Form. Zero values use the defaults.
type FormOptions struct {
	NavigationDelay time.Duration
	// OnStateChange is called outside the form lock after every status transition.
	// A notification overtaken by a newer transition is dropped.
	OnStateChange func(formID string, state SubmissionState)
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// SubmitResult is what a submit attempt produced.
type SubmitResult struct {
	State  SubmissionState
	Errors FieldErrors
}

// Invalid reports whether the attempt stopped at validation.
func (r SubmitResult) Invalid() bool { return !r.Errors.Empty() }

// Form holds one mounted booking form: its values, field errors and submission state.
// All events on a form are serialised by its mutex; the booking request itself runs
// outside the lock.
type Form struct {
	id        string
	page      PageContext
	client    BookingClient
	delay     time.Duration
	onChange  func(string, SubmissionState)
	afterFunc func(time.Duration, func()) *time.Timer
	tracer    trace.Tracer

	mu       sync.Mutex
	values   FormSnapshot
	errors   FieldErrors
	state    SubmissionState
	navTimer *time.Timer
	closed   bool
	seq      uint64

	notifyMu sync.Mutex
	notified uint64
}

// NewForm mounts a form for the property the page is showing.
func NewForm(id string, page PageContext, client BookingClient, opts FormOptions) *Form {
	delay := opts.NavigationDelay
	if delay <= 0 {
		delay = DefaultNavigationDelay
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Form{
		id:        id,
		page:      page,
		client:    client,
		delay:     delay,
		onChange:  opts.OnStateChange,
		afterFunc: time.AfterFunc,
		tracer:    tp.Tracer("github.com/staybook/staybook-api/internal/domain/booking"),
		values:    NewSnapshot(page.CurrentPropertyID()),
		errors:    FieldErrors{},
		state:     SubmissionState{Status: StatusIdle},
	}
}

// ID returns the form identifier.
func (f *Form) ID() string { return f.id }

// Input applies one input event and returns the value now stored for the field.
// A field's error is dropped as soon as its stored value changes.
func (f *Form) Input(field Field, raw string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrFormClosed
	}
	if !field.Editable() {
		return "", ErrFieldReadOnly
	}
	if f.state.Status == StatusSubmitting || f.state.Status == StatusSucceeded {
		return "", ErrFormLocked
	}

	before := f.values.Get(field)
	f.values.set(field, field.Format(raw))
	after := f.values.Get(field)

	if after != before {
		delete(f.errors, field.String())
	}
	return after, nil
}

// Snapshot returns a copy of the current values.
func (f *Form) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// State returns the current submission state.
func (f *Form) State() SubmissionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Inspect returns values, errors and state read under one lock.
func (f *Form) Inspect() (FormSnapshot, FieldErrors, SubmissionState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values, f.errors.Clone(), f.state
}

// Submit validates the form and, when it is valid, sends the booking. Attempts made while
// a request is in flight or after a confirmed booking are ignored and return an error.
// A rejected booking is not an error: it leaves the form Failed and ready to resubmit.
func (f *Form) Submit(ctx context.Context) (SubmitResult, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return SubmitResult{}, ErrFormClosed
	}
	switch f.state.Status {
	case StatusSubmitting:
		st := f.state
		f.mu.Unlock()
		return SubmitResult{State: st}, ErrSubmitInProgress
	case StatusSucceeded:
		st := f.state
		f.mu.Unlock()
		return SubmitResult{State: st}, ErrAlreadyBooked
	}

	f.errors = Validate(f.values)
	if !f.errors.Empty() {
		res := SubmitResult{State: f.state, Errors: f.errors.Clone()}
		f.mu.Unlock()
		logger.FromContext(ctx).Debug().
			Str("form_id", f.id).
			Int("invalid_fields", len(res.Errors)).
			Msg("Booking form failed validation")
		return res, nil
	}

	payload := f.values
	if payload.PropertyID == "" {
		payload.PropertyID = f.page.CurrentPropertyID()
	}
	f.transition(SubmissionState{Status: StatusSubmitting})
	submitting, seq := f.state, f.seq
	f.mu.Unlock()
	f.notify(seq, submitting)

	next := f.send(ctx, payload)

	f.mu.Lock()
	f.transition(next)
	if next.Status == StatusSucceeded && !f.closed {
		f.scheduleNavigation(next.BookingID)
	}
	final, seq := f.state, f.seq
	f.mu.Unlock()
	f.notify(seq, final)

	return SubmitResult{State: final}, nil
}

// send performs the booking call and maps its outcome to the next state. The call survives
// cancellation of ctx and is bounded by the client timeout.
func (f *Form) send(ctx context.Context, payload FormSnapshot) SubmissionState {
	ctx, span := f.tracer.Start(context.WithoutCancel(ctx), "booking.submit", trace.WithAttributes(
		attribute.String("booking.form_id", f.id),
		attribute.String("booking.property_id", payload.PropertyID),
	))
	defer span.End()

	log := logger.FromContext(ctx)
	res, err := f.client.CreateBooking(ctx, toBookingRequest(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "booking request failed")
		logger.LogError(ctx, err, "Booking request failed", "form_id", f.id, "property_id", payload.PropertyID)
		msg := MsgSubmitFailed
		if errors.Is(err, bookingapi.ErrInvalidResponse) {
			msg = MsgUnexpectedError
		}
		return SubmissionState{Status: StatusFailed, Message: msg}
	}

	if !res.OK() {
		msg := res.Message
		if msg == "" {
			msg = MsgSubmitFailed
		}
		span.SetStatus(codes.Error, "booking rejected")
		span.SetAttributes(attribute.Int("http.status_code", res.Status))
		log.Warn().Str("form_id", f.id).Int("status", res.Status).Str("message", msg).Msg("Booking rejected")
		return SubmissionState{Status: StatusFailed, Message: msg}
	}

	span.SetAttributes(attribute.String("booking.id", res.BookingID))
	log.Info().Str("form_id", f.id).Str("property_id", payload.PropertyID).Str("booking_id", res.BookingID).Msg("Booking created")
	return SubmissionState{Status: StatusSucceeded, BookingID: res.BookingID}
}

// transition must be called with f.mu held.
func (f *Form) transition(next SubmissionState) {
	if !canTransition(f.state.Status, next.Status) {
		return
	}
	f.state = next
	f.seq++
}

// scheduleNavigation must be called with f.mu held. The timer is owned by the form and
// stopped by Close.
func (f *Form) scheduleNavigation(bookingID string) {
	path := ConfirmationPath(bookingID)
	f.navTimer = f.afterFunc(f.delay, func() {
		f.mu.Lock()
		if f.closed || f.navTimer == nil {
			f.mu.Unlock()
			return
		}
		f.navTimer = nil
		f.mu.Unlock()

		f.page.Navigate(path)
	})
}

// NavigationPending reports whether the confirmation redirect has not fired yet.
func (f *Form) NavigationPending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.navTimer != nil
}

// Close unmounts the form and cancels a pending confirmation redirect.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.navTimer != nil {
		f.navTimer.Stop()
		f.navTimer = nil
	}
}

// notify delivers the state produced by transition seq unless a later one went out first.
func (f *Form) notify(seq uint64, st SubmissionState) {
	if f.onChange == nil {
		return
	}
	f.notifyMu.Lock()
	defer f.notifyMu.Unlock()
	if seq <= f.notified {
		return
	}
	f.notified = seq
	f.onChange(f.id, st)
}

// ConfirmationPath is where a successful booking sends the user.
func ConfirmationPath(bookingID string) string {
	return "/booking/confirmation?bookingId=" + url.QueryEscape(bookingID)
}

func toBookingRequest(s FormSnapshot) bookingapi.BookingRequest {
	return bookingapi.BookingRequest{
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		PhoneNumber:    s.PhoneNumber,
		CardNumber:     s.CardNumber,
		ExpirationDate: s.ExpirationDate,
		CVV:            s.CVV,
		BillingAddress: s.BillingAddress,
		CheckInDate:    s.CheckInDate,
		CheckOutDate:   s.CheckOutDate,
		Guests:         s.Guests,
		PropertyID:     s.PropertyID,
	}
}

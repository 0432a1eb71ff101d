package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staybook/staybook-api/internal/pkg/logger"
	"github.com/staybook/staybook-api/internal/pkg/realtime"
)

const (
	defaultIdleTTL = 30 * time.Minute
	reaperInterval = time.Minute
)

// Config tunes the booking service.
type Config struct {
	NavigationDelay time.Duration
	IdleTTL         time.Duration
}

// Service mounts booking forms and routes input and submit events to them.
type Service struct {
	client   BookingClient
	events   Publisher
	registry *Registry
	cfg      Config
}

// NewService creates a new booking form service.
func NewService(client BookingClient, events Publisher, cfg Config) *Service {
	if cfg.NavigationDelay <= 0 {
		cfg.NavigationDelay = DefaultNavigationDelay
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	if events == nil {
		events = nopPublisher{}
	}
	return &Service{
		client:   client,
		events:   events,
		registry: NewRegistry(),
		cfg:      cfg,
	}
}

// Mount creates a form for a property.
func (s *Service) Mount(ctx context.Context, propertyID string) (*Form, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return nil, ErrMissingProperty
	}

	id := uuid.NewString()
	page := &formPage{formID: id, propertyID: propertyID, events: s.events}
	f := NewForm(id, page, s.client, FormOptions{
		NavigationDelay: s.cfg.NavigationDelay,
		OnStateChange:   s.publishState,
	})
	s.registry.Add(f)
	formsActive.Inc()

	logger.LogInfo(ctx, "Booking form mounted", "form_id", id, "property_id", propertyID)
	return f, nil
}

// Get returns a mounted form.
func (s *Service) Get(id string) (*Form, error) {
	f, ok := s.registry.Get(id)
	if !ok {
		return nil, ErrFormNotFound
	}
	return f, nil
}

// Input applies an input event to a form field given by wire name.
func (s *Service) Input(id, fieldName, raw string) (*Form, string, error) {
	f, err := s.Get(id)
	if err != nil {
		return nil, "", err
	}
	field, ok := ParseField(fieldName)
	if !ok {
		return f, "", ErrUnknownField
	}
	stored, err := f.Input(field, raw)
	if err != nil {
		return f, "", err
	}
	return f, stored, nil
}

// Submit runs a submit attempt on a form.
func (s *Service) Submit(ctx context.Context, id string) (*Form, SubmitResult, error) {
	f, err := s.Get(id)
	if err != nil {
		return nil, SubmitResult{}, err
	}

	start := time.Now()
	res, err := f.Submit(ctx)
	switch {
	case errors.Is(err, ErrSubmitInProgress), errors.Is(err, ErrAlreadyBooked):
		submissionsTotal.WithLabelValues(outcomeIgnored).Inc()
		logger.LogWarn(ctx, "Submit ignored", "form_id", id, "reason", err.Error())
	case err != nil:
	case res.Invalid():
		submissionsTotal.WithLabelValues(outcomeInvalid).Inc()
	case res.State.Status == StatusSucceeded:
		submissionsTotal.WithLabelValues(outcomeSucceeded).Inc()
		submitDuration.Observe(time.Since(start).Seconds())
	case res.State.Status == StatusFailed:
		submissionsTotal.WithLabelValues(outcomeFailed).Inc()
		submitDuration.Observe(time.Since(start).Seconds())
	}
	return f, res, err
}

// Unmount removes a form and cancels its pending navigation.
func (s *Service) Unmount(id string) error {
	f, ok := s.registry.Remove(id)
	if !ok {
		return ErrFormNotFound
	}
	f.Close()
	formsActive.Dec()
	return nil
}

// Run reaps idle forms until ctx is done.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(reaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reapIdle(ctx)
		}
	}
}

func (s *Service) reapIdle(ctx context.Context) {
	removed := s.registry.RemoveIdle(s.cfg.IdleTTL)
	for _, f := range removed {
		f.Close()
		formsActive.Dec()
	}
	if len(removed) > 0 {
		logger.LogDebug(ctx, "Reaped idle booking forms", "count", len(removed))
	}
}

// Shutdown closes every mounted form.
func (s *Service) Shutdown() {
	for _, f := range s.registry.RemoveAll() {
		f.Close()
		formsActive.Dec()
	}
}

func (s *Service) publishState(formID string, st SubmissionState) {
	s.events.Publish(formID, realtime.Event{Type: EventState, Data: st})
}

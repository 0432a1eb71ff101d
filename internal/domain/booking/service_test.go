package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/staybook-api/internal/pkg/bookingapi"
	"github.com/staybook/staybook-api/internal/pkg/realtime"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]realtime.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(map[string][]realtime.Event)}
}

func (p *recordingPublisher) Publish(topic string, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[topic] = append(p.events[topic], event)
}

func (p *recordingPublisher) eventsFor(topic string) []realtime.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]realtime.Event(nil), p.events[topic]...)
}

func fillValidViaService(t *testing.T, svc *Service, id string) {
	t.Helper()
	inputs := map[string]string{
		"firstName":      "Jane",
		"lastName":       "Doe",
		"email":          "jane@example.com",
		"phoneNumber":    "+1 555 0100",
		"cardNumber":     "4111111111111111",
		"expirationDate": "12/27",
		"cvv":            "123",
		"billingAddress": "1 Main St",
		"checkInDate":    "2025-06-10",
		"checkOutDate":   "2025-06-12",
		"guests":         "2",
	}
	for name, raw := range inputs {
		_, _, err := svc.Input(id, name, raw)
		require.NoError(t, err, name)
	}
}

func TestServiceMount(t *testing.T) {
	svc := NewService(&fakeClient{}, nil, Config{})
	defer svc.Shutdown()

	_, err := svc.Mount(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingProperty)

	f, err := svc.Mount(context.Background(), " prop_1 ")
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID())
	assert.Equal(t, "prop_1", f.Snapshot().PropertyID)

	got, err := svc.Get(f.ID())
	require.NoError(t, err)
	assert.Same(t, f, got)
}

func TestServiceInputErrors(t *testing.T) {
	svc := NewService(&fakeClient{}, nil, Config{})
	defer svc.Shutdown()

	_, _, err := svc.Input("missing", "firstName", "Jane")
	assert.ErrorIs(t, err, ErrFormNotFound)

	f, err := svc.Mount(context.Background(), "prop_1")
	require.NoError(t, err)

	_, _, err = svc.Input(f.ID(), "nickname", "JD")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, _, err = svc.Input(f.ID(), "propertyId", "prop_2")
	assert.ErrorIs(t, err, ErrFieldReadOnly)

	_, stored, err := svc.Input(f.ID(), "cardNumber", "41111111")
	require.NoError(t, err)
	assert.Equal(t, "4111 1111", stored)
}

func TestServiceSubmitPublishesStateAndNavigation(t *testing.T) {
	events := newRecordingPublisher()
	client := &fakeClient{result: bookingapi.Created("bk_1")}
	svc := NewService(client, events, Config{NavigationDelay: 10 * time.Millisecond})
	defer svc.Shutdown()

	f, err := svc.Mount(context.Background(), "prop_1")
	require.NoError(t, err)
	fillValidViaService(t, svc, f.ID())

	_, res, err := svc.Submit(context.Background(), f.ID())
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, res.State.Status)

	assert.Eventually(t, func() bool {
		return len(events.eventsFor(f.ID())) == 3
	}, time.Second, 5*time.Millisecond)

	got := events.eventsFor(f.ID())
	assert.Equal(t, realtime.Event{Type: EventState, Data: SubmissionState{Status: StatusSubmitting}}, got[0])
	assert.Equal(t, realtime.Event{Type: EventState, Data: SubmissionState{Status: StatusSucceeded, BookingID: "bk_1"}}, got[1])
	assert.Equal(t, realtime.Event{Type: EventNavigate, Data: NavigatePayload{Path: "/booking/confirmation?bookingId=bk_1"}}, got[2])
}

func TestServiceUnmountCancelsNavigation(t *testing.T) {
	events := newRecordingPublisher()
	client := &fakeClient{result: bookingapi.Created("bk_1")}
	svc := NewService(client, events, Config{NavigationDelay: 50 * time.Millisecond})
	defer svc.Shutdown()

	f, err := svc.Mount(context.Background(), "prop_1")
	require.NoError(t, err)
	fillValidViaService(t, svc, f.ID())

	_, _, err = svc.Submit(context.Background(), f.ID())
	require.NoError(t, err)
	require.NoError(t, svc.Unmount(f.ID()))

	time.Sleep(100 * time.Millisecond)
	for _, ev := range events.eventsFor(f.ID()) {
		assert.NotEqual(t, EventNavigate, ev.Type)
	}

	assert.ErrorIs(t, svc.Unmount(f.ID()), ErrFormNotFound)
	_, err = svc.Get(f.ID())
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestServiceReapIdle(t *testing.T) {
	svc := NewService(&fakeClient{}, nil, Config{IdleTTL: time.Minute})
	defer svc.Shutdown()

	now := time.Now()
	svc.registry.now = func() time.Time { return now }

	f, err := svc.Mount(context.Background(), "prop_1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	svc.reapIdle(context.Background())

	_, err = svc.Get(f.ID())
	assert.ErrorIs(t, err, ErrFormNotFound)
	_, err = f.Input(FieldFirstName, "Jane")
	assert.ErrorIs(t, err, ErrFormClosed)
}

package booking

import (
	"github.com/staybook/staybook-api/internal/pkg/realtime"
)

// Event types pushed to the browser on a form's topic.
const (
	EventState    = "state"
	EventNavigate = "navigate"
)

// Publisher pushes events to whoever watches a form.
type Publisher interface {
	Publish(topic string, event realtime.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, realtime.Event) {}

// NavigatePayload is the data of a navigate event.
type NavigatePayload struct {
	Path string `json:"path"`
}

// formPage is the PageContext of a mounted form: navigation becomes an event on the form's
// topic, and the property comes from the mount request.
type formPage struct {
	formID     string
	propertyID string
	events     Publisher
}

func (p *formPage) Navigate(path string) {
	p.events.Publish(p.formID, realtime.Event{Type: EventNavigate, Data: NavigatePayload{Path: path}})
}

func (p *formPage) CurrentPropertyID() string {
	return p.propertyID
}

package booking

import (
	"sync"
	"time"
)

type registryEntry struct {
	form     *Form
	lastSeen time.Time
}

// Registry holds the forms mounted on this instance.
type Registry struct {
	mu    sync.Mutex
	forms map[string]*registryEntry
	now   func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		forms: make(map[string]*registryEntry),
		now:   time.Now,
	}
}

// Add stores a newly mounted form.
func (r *Registry) Add(f *Form) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[f.ID()] = &registryEntry{form: f, lastSeen: r.now()}
}

// Get returns a form and marks it as recently used.
func (r *Registry) Get(id string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.forms[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.form, true
}

// Remove drops a form and returns it so the caller can close it.
func (r *Registry) Remove(id string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.forms[id]
	if !ok {
		return nil, false
	}
	delete(r.forms, id)
	return e.form, true
}

// RemoveIdle drops forms unused for longer than ttl. A form whose booking is in flight is
// kept regardless.
func (r *Registry) RemoveIdle(ttl time.Duration) []*Form {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	var removed []*Form
	for id, e := range r.forms {
		if e.lastSeen.After(cutoff) || e.form.State().Submitting() {
			continue
		}
		delete(r.forms, id)
		removed = append(removed, e.form)
	}
	return removed
}

// RemoveAll empties the registry.
func (r *Registry) RemoveAll() []*Form {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Form, 0, len(r.forms))
	for id, e := range r.forms {
		out = append(out, e.form)
		delete(r.forms, id)
	}
	return out
}

// Len returns the number of mounted forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

package booking

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns booking form router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Mount)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Unmount)

	// Events from the browser
	r.Patch("/{id}/fields/{field}", h.Input)
	r.Post("/{id}/submit", h.Submit)

	// State and navigation pushed to the browser
	r.Get("/{id}/events", h.Events)

	return r
}

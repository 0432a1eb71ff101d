package property

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns property router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.Get)
	r.Get("/{id}/reviews", h.Reviews)

	return r
}

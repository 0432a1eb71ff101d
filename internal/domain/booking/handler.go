package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/staybook/staybook-api/internal/pkg/errorhandler"
	"github.com/staybook/staybook-api/internal/pkg/realtime"
	"github.com/staybook/staybook-api/internal/pkg/response"
	"github.com/staybook/staybook-api/internal/pkg/validator"
)

// Handler handles booking form HTTP requests
type Handler struct {
	service  *Service
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewHandler creates booking form handler
func NewHandler(service *Service, hub *realtime.Hub, allowedOrigins []string) *Handler {
	return &Handler{
		service:  service,
		hub:      hub,
		upgrader: realtime.NewUpgrader(allowedOrigins),
		now:      time.Now,
	}
}

// Mount handles POST /forms
// @Summary Mount a booking form for a property
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body MountRequest true "Property to book"
// @Success 201 {object} response.Response{data=FormResponse}
// @Failure 400,422 {object} response.Response
// @Router /forms [post]
func (h *Handler) Mount(w http.ResponseWriter, r *http.Request) {
	var req MountRequest
	if id := r.URL.Query().Get("propertyId"); id != "" {
		req.PropertyID = id
	} else if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	f, err := h.service.Mount(r.Context(), req.PropertyID)
	if err != nil {
		if errors.Is(err, ErrMissingProperty) {
			response.BadRequest(w, "Property ID is required")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mount form", err)
		return
	}

	response.Created(w, NewFormResponse(f, h.now()))
}

// Get handles GET /forms/{id}
// @Summary Get a booking form
// @Tags Booking
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.Response{data=FormResponse}
// @Failure 404 {object} response.Response
// @Router /forms/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	response.OK(w, NewFormResponse(f, h.now()))
}

// Input handles PATCH /forms/{id}/fields/{field}
// @Summary Apply an input event to a form field
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param field path string true "Field name"
// @Param request body InputRequest true "Raw input value"
// @Success 200 {object} response.Response{data=InputResponse}
// @Failure 400,404,409 {object} response.Response
// @Router /forms/{id}/fields/{field} [patch]
func (h *Handler) Input(w http.ResponseWriter, r *http.Request) {
	var req InputRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	raw, err := req.Raw()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	fieldName := chi.URLParam(r, "field")
	f, stored, err := h.service.Input(chi.URLParam(r, "id"), fieldName, raw)
	if err != nil {
		h.writeFormError(w, err)
		return
	}

	response.OK(w, InputResponse{
		Field: fieldName,
		Value: stored,
		Form:  NewFormResponse(f, h.now()),
	})
}

// Submit handles POST /forms/{id}/submit
// @Summary Submit a booking form
// @Tags Booking
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.Response{data=FormResponse}
// @Failure 404,409,422,502 {object} response.Response
// @Router /forms/{id}/submit [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, res, err := h.service.Submit(ctx, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrSubmitInProgress):
		response.ErrorInfoWithData(w, http.StatusConflict, response.ErrorInfo{
			Code:    "SUBMIT_IN_PROGRESS",
			Message: "Booking is already being submitted",
		}, NewFormResponse(f, h.now()))
		return
	case errors.Is(err, ErrAlreadyBooked):
		response.ErrorInfoWithData(w, http.StatusConflict, response.ErrorInfo{
			Code:    "ALREADY_BOOKED",
			Message: "Booking has already been confirmed",
		}, NewFormResponse(f, h.now()))
		return
	case err != nil:
		h.writeFormError(w, err)
		return
	}

	if res.Invalid() {
		errorhandler.LogValidationError(ctx, res.Errors)
		response.ValidationError(w, res.Errors)
		return
	}

	view := NewFormResponse(f, h.now())
	if res.State.Status == StatusFailed {
		errorhandler.HandleErrorWithData(ctx, w, http.StatusBadGateway, response.ErrorInfo{
			Code:      "BOOKING_FAILED",
			Message:   res.State.Message,
			Retryable: true,
		}, view, nil)
		return
	}

	response.OK(w, view)
}

// Unmount handles DELETE /forms/{id}
// @Summary Unmount a booking form
// @Tags Booking
// @Param id path string true "Form ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /forms/{id} [delete]
func (h *Handler) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Unmount(chi.URLParam(r, "id")); err != nil {
		h.writeFormError(w, err)
		return
	}
	response.NoContent(w)
}

// Events handles GET /forms/{id}/events
// Upgrades to a WebSocket that receives state and navigate events for the form.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFormError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("form_id", f.ID()).Msg("WebSocket upgrade failed")
		return
	}

	h.hub.Serve(conn, f.ID())
}

func (h *Handler) writeFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrFormNotFound), errors.Is(err, ErrFormClosed):
		response.NotFound(w, "Booking form not found")
	case errors.Is(err, ErrUnknownField):
		response.BadRequest(w, "Unknown field")
	case errors.Is(err, ErrFieldReadOnly):
		response.BadRequest(w, "Field is read-only")
	case errors.Is(err, ErrFormLocked):
		response.Conflict(w, "Form is locked while the booking is submitted or confirmed")
	default:
		response.InternalError(w)
	}
}

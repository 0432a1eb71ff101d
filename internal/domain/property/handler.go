package property

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staybook/staybook-api/internal/pkg/errorhandler"
	"github.com/staybook/staybook-api/internal/pkg/response"
)

// Handler handles property page HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates property handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /properties/{id}
// @Summary Get property details
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Response{data=propertyapi.Property}
// @Failure 404,502 {object} response.Response
// @Router /properties/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			response.ErrorInfoWithData(w, http.StatusNotFound, response.ErrorInfo{
				Code:    "NOT_FOUND",
				Message: MsgNotFound,
				Escape:  homePath,
			}, nil)
			return
		}
		errorhandler.LogExternalServiceError(r.Context(), "property", "GET /api/properties/{id}", err)
		response.ErrorInfoWithData(w, http.StatusBadGateway, response.ErrorInfo{
			Code:      "PROPERTY_UNAVAILABLE",
			Message:   MsgLoadFailed,
			Retryable: true,
		}, nil)
		return
	}

	response.OK(w, p)
}

// Reviews handles GET /properties/{id}/reviews
// @Summary List property reviews
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Param all query bool false "Return every review instead of the first three"
// @Success 200 {object} response.Response{data=ReviewsResponse}
// @Failure 502 {object} response.Response
// @Router /properties/{id}/reviews [get]
func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	resp, err := h.service.Reviews(r.Context(), chi.URLParam(r, "id"), all)
	if err != nil {
		errorhandler.LogExternalServiceError(r.Context(), "property", "GET /api/properties/{id}/reviews", err)
		response.ErrorInfoWithData(w, http.StatusBadGateway, response.ErrorInfo{
			Code:      "REVIEWS_UNAVAILABLE",
			Message:   MsgReviewsFailed,
			Retryable: true,
		}, nil)
		return
	}

	response.OK(w, resp)
}

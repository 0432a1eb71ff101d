package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/staybook/staybook-api/internal/config"
	"github.com/staybook/staybook-api/internal/domain/booking"
	"github.com/staybook/staybook-api/internal/domain/property"
	"github.com/staybook/staybook-api/internal/pkg/bookingapi"
	"github.com/staybook/staybook-api/internal/pkg/propertyapi"
)

type stubBooking struct{}

func (stubBooking) CreateBooking(ctx context.Context, req bookingapi.BookingRequest) (bookingapi.Result, error) {
	return bookingapi.Created("bk_1"), nil
}

type stubProperties struct{}

func (stubProperties) GetProperty(ctx context.Context, id string) (*propertyapi.Property, error) {
	if id == "missing" {
		return nil, propertyapi.ErrNotFound
	}
	return &propertyapi.Property{ID: id, Title: "Cabin"}, nil
}

func (stubProperties) ListReviews(ctx context.Context, propertyID string) ([]propertyapi.Review, error) {
	return []propertyapi.Review{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AllowedOrigins:         []string{"http://localhost:3000"},
		UpstreamTimeoutSeconds: 1,
		MetricsEnabled:         true,
	}
	svc := booking.NewService(stubBooking{}, nil, booking.Config{NavigationDelay: time.Hour})
	t.Cleanup(svc.Shutdown)

	return newRouter(cfg, routerDeps{
		booking:  booking.NewHandler(svc, nil, cfg.AllowedOrigins),
		property: property.NewHandler(property.NewService(stubProperties{})),
	})
}

func TestRouterMountsRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "ping", method: http.MethodGet, path: "/api/v1/ping", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "mount form", method: http.MethodPost, path: "/api/v1/forms", body: `{"propertyId":"p1"}`, want: http.StatusCreated},
		{name: "unknown form", method: http.MethodGet, path: "/api/v1/forms/nope", want: http.StatusNotFound},
		{name: "property", method: http.MethodGet, path: "/api/v1/properties/p1", want: http.StatusOK},
		{name: "missing property", method: http.MethodGet, path: "/api/v1/properties/missing", want: http.StatusNotFound},
		{name: "reviews", method: http.MethodGet, path: "/api/v1/properties/p1/reviews", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Fatalf("expected status %d, got %d: %s", tt.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHealthWithoutRedis(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["status"] != "ok" {
		t.Fatalf("expected ok, got %q", body.Data["status"])
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

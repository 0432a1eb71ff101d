package property

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/staybook-api/internal/pkg/propertyapi"
)

type fakeSource struct {
	property   *propertyapi.Property
	reviews    []propertyapi.Review
	err        error
	reviewsErr error
	gotID      string
}

func (s *fakeSource) GetProperty(ctx context.Context, id string) (*propertyapi.Property, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.property, nil
}

func (s *fakeSource) ListReviews(ctx context.Context, propertyID string) ([]propertyapi.Review, error) {
	s.gotID = propertyID
	if s.reviewsErr != nil {
		return nil, s.reviewsErr
	}
	return s.reviews, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Retryable bool   `json:"retryable"`
		Escape    string `json:"escape"`
	} `json:"error"`
}

func get(t *testing.T, h http.Handler, path string) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec.Code, env
}

func TestHandlerGetProperty(t *testing.T) {
	src := &fakeSource{property: &propertyapi.Property{ID: "p1", Title: "Cabin"}}
	h := NewHandler(NewService(src)).Routes()

	status, env := get(t, h, "/p1")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var p propertyapi.Property
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Cabin", p.Title)
	assert.Equal(t, "p1", src.gotID)
}

func TestHandlerGetPropertyNotFound(t *testing.T) {
	src := &fakeSource{err: propertyapi.ErrNotFound}
	h := NewHandler(NewService(src)).Routes()

	status, env := get(t, h, "/missing")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, MsgNotFound, env.Error.Message)
	assert.Equal(t, "/", env.Error.Escape)
	assert.False(t, env.Error.Retryable)
}

func TestHandlerGetPropertyUnavailable(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("%w: status=500", propertyapi.ErrUnavailable)}
	h := NewHandler(NewService(src)).Routes()

	status, env := get(t, h, "/p1")
	require.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, MsgLoadFailed, env.Error.Message)
	assert.True(t, env.Error.Retryable)
	assert.Empty(t, env.Error.Escape)
}

func TestHandlerReviews(t *testing.T) {
	src := &fakeSource{reviews: reviewsWithRatings(5, 5, 4, 4)}
	h := NewHandler(NewService(src)).Routes()

	status, env := get(t, h, "/p1/reviews")
	require.Equal(t, http.StatusOK, status)
	var resp ReviewsResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Len(t, resp.Reviews, 3)
	assert.True(t, resp.HasMore)
	assert.Equal(t, ReviewSummary{Count: 4, AverageRating: 4.5, RoundedRating: 5}, resp.Summary)

	status, env = get(t, h, "/p1/reviews?all=true")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Len(t, resp.Reviews, 4)
	assert.False(t, resp.HasMore)
}

func TestHandlerReviewsUnavailable(t *testing.T) {
	src := &fakeSource{reviewsErr: errors.New("boom")}
	h := NewHandler(NewService(src)).Routes()

	status, env := get(t, h, "/p1/reviews")
	require.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "REVIEWS_UNAVAILABLE", env.Error.Code)
	assert.Equal(t, MsgReviewsFailed, env.Error.Message)
	assert.True(t, env.Error.Retryable)
}

func TestServiceGetBlankID(t *testing.T) {
	svc := NewService(&fakeSource{})
	_, err := svc.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

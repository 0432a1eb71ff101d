package property

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/staybook/staybook-api/internal/pkg/propertyapi"
)

func reviewsWithRatings(ratings ...int) []propertyapi.Review {
	out := make([]propertyapi.Review, len(ratings))
	for i, r := range ratings {
		out[i] = propertyapi.Review{ID: fmt.Sprintf("r%d", i+1), Rating: r}
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    ReviewSummary
	}{
		{name: "no reviews", want: ReviewSummary{}},
		{name: "single", ratings: []int{4}, want: ReviewSummary{Count: 1, AverageRating: 4, RoundedRating: 4}},
		{name: "half rounds up", ratings: []int{4, 5}, want: ReviewSummary{Count: 2, AverageRating: 4.5, RoundedRating: 5}},
		{name: "one decimal", ratings: []int{5, 4, 4}, want: ReviewSummary{Count: 3, AverageRating: 4.3, RoundedRating: 4}},
		{name: "rounds down", ratings: []int{3, 3, 4}, want: ReviewSummary{Count: 3, AverageRating: 3.3, RoundedRating: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(reviewsWithRatings(tt.ratings...)))
		})
	}
}

func TestNewReviewsResponseShowsFirstThree(t *testing.T) {
	reviews := reviewsWithRatings(5, 4, 3, 2, 1)

	resp := NewReviewsResponse(reviews, false)
	assert.Len(t, resp.Reviews, 3)
	assert.Equal(t, "r1", resp.Reviews[0].ID)
	assert.True(t, resp.HasMore)
	assert.Equal(t, 5, resp.Summary.Count)
	assert.Equal(t, 3.0, resp.Summary.AverageRating)

	resp = NewReviewsResponse(reviews, true)
	assert.Len(t, resp.Reviews, 5)
	assert.False(t, resp.HasMore)
}

func TestNewReviewsResponseEmpty(t *testing.T) {
	resp := NewReviewsResponse([]propertyapi.Review{}, false)
	assert.NotNil(t, resp.Reviews)
	assert.Empty(t, resp.Reviews)
	assert.False(t, resp.HasMore)
	assert.Equal(t, ReviewSummary{}, resp.Summary)
}

func TestReviewFromAPIDates(t *testing.T) {
	r := ReviewFromAPI(propertyapi.Review{
		ID:        "r1",
		CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, "2024-03-05T10:00:00Z", r.CreatedAt)
	assert.Equal(t, "March 5, 2024", r.DisplayDate)

	r = ReviewFromAPI(propertyapi.Review{ID: "r2"})
	assert.Empty(t, r.CreatedAt)
	assert.Empty(t, r.DisplayDate)
}

package property

import (
	"math"
	"time"

	"github.com/staybook/staybook-api/internal/pkg/propertyapi"
)

// ReviewResponse is one review as the property page renders it.
type ReviewResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserAvatar   string `json:"userAvatar"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"createdAt"`
	DisplayDate  string `json:"displayDate"`
	HelpfulCount int    `json:"helpfulCount"`
}

// ReviewSummary aggregates every review of a property, not only the shown ones.
type ReviewSummary struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
	RoundedRating int     `json:"roundedRating"`
}

// ReviewsResponse is the reviews section of a property page.
type ReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Summary ReviewSummary    `json:"summary"`
	HasMore bool             `json:"hasMore"`
}

// ReviewFromAPI converts an upstream review.
func ReviewFromAPI(r propertyapi.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		UserAvatar:   r.UserAvatar,
		Rating:       r.Rating,
		Comment:      r.Comment,
		HelpfulCount: r.HelpfulCount,
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
		resp.DisplayDate = r.CreatedAt.Format("January 2, 2006")
	}
	return resp
}

// Summarize computes the rating summary. An empty list has a zero summary.
func Summarize(reviews []propertyapi.Review) ReviewSummary {
	if len(reviews) == 0 {
		return ReviewSummary{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return ReviewSummary{
		Count:         len(reviews),
		AverageRating: math.Round(avg*10) / 10,
		// half stars round up
		RoundedRating: int(math.Floor(avg + 0.5)),
	}
}

// NewReviewsResponse builds the section, showing the first three reviews unless all is set.
func NewReviewsResponse(reviews []propertyapi.Review, all bool) ReviewsResponse {
	shown := reviews
	if !all && len(shown) > defaultShownCount {
		shown = shown[:defaultShownCount]
	}
	items := make([]ReviewResponse, len(shown))
	for i, r := range shown {
		items[i] = ReviewFromAPI(r)
	}
	return ReviewsResponse{
		Reviews: items,
		Summary: Summarize(reviews),
		HasMore: len(shown) < len(reviews),
	}
}

package property

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/staybook/staybook-api/internal/pkg/propertyapi"
)

// PropertySource interface for mocking in tests.
type PropertySource interface {
	GetProperty(ctx context.Context, id string) (*propertyapi.Property, error)
	ListReviews(ctx context.Context, propertyID string) ([]propertyapi.Review, error)
}

// Service reads property pages from the property service.
type Service struct {
	source PropertySource
}

// NewService creates a new property service.
func NewService(source PropertySource) *Service {
	return &Service{source: source}
}

// Get returns a property. Not found is terminal; every other failure may be retried.
func (s *Service) Get(ctx context.Context, id string) (*propertyapi.Property, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrPropertyNotFound
	}

	p, err := s.source.GetProperty(ctx, id)
	if err != nil {
		if errors.Is(err, propertyapi.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return p, nil
}

// Reviews returns the reviews section of a property.
func (s *Service) Reviews(ctx context.Context, propertyID string, all bool) (ReviewsResponse, error) {
	reviews, err := s.source.ListReviews(ctx, strings.TrimSpace(propertyID))
	if err != nil {
		return ReviewsResponse{}, fmt.Errorf("%w: %v", ErrReviewsFailed, err)
	}
	return NewReviewsResponse(reviews, all), nil
}

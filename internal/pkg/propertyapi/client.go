package propertyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/staybook/staybook-api/internal/pkg/upstream"
)

var (
	// ErrNotFound is returned when the property service answers 404.
	ErrNotFound = errors.New("property not found")
	// ErrUnavailable wraps every other failure; callers may offer a retry.
	ErrUnavailable = errors.New("property service unavailable")
)

// Host is the property owner shown on the detail page.
type Host struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	JoinedDate string `json:"joinedDate"`
}

// Property is the detail view of a rental listing.
type Property struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Host        Host     `json:"host"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Guests      int      `json:"guests"`
	Rules       []string `json:"rules"`
}

// Review is one guest review of a property.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	UserAvatar   string    `json:"userAvatar"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
	HelpfulCount int       `json:"helpfulCount"`
}

// Client reads properties and their reviews from the property service.
type Client struct {
	baseURL string
	token   string
	ua      string
	http    *http.Client
}

// NewClient creates a new property service client.
func NewClient(baseURL, token string, timeout time.Duration, ua string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		ua:      ua,
		http:    upstream.NewHTTPClient(timeout),
	}
}

// GetProperty fetches one property. A 404 maps to ErrNotFound, anything else that fails
// to ErrUnavailable.
func (c *Client) GetProperty(ctx context.Context, id string) (*Property, error) {
	var p Property
	if err := c.get(ctx, "/api/properties/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListReviews fetches every review of a property. No reviews is an empty slice, not an error.
func (c *Client) ListReviews(ctx context.Context, propertyID string) ([]Review, error) {
	var reviews []Review
	if err := c.get(ctx, "/api/properties/"+url.PathEscape(propertyID)+"/reviews", &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("%w: client is nil", ErrUnavailable)
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return fmt.Errorf("%w: base_url is empty", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	upstream.PrepareRequest(ctx, req, c.token, c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, upstream.ClassifyRequestError(ctx, "property", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := upstream.ReadErrorBody(resp.Body)
		return fmt.Errorf("%w: status=%d message=%s", ErrUnavailable, resp.StatusCode, upstream.ErrorMessage(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}

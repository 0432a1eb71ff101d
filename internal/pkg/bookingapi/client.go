package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/staybook/staybook-api/internal/pkg/upstream"
)

const bookingsPath = "/api/bookings"

// ErrInvalidResponse means the service answered with a success status but no usable body.
var ErrInvalidResponse = errors.New("booking service returned an invalid response")

// Client represents the booking service HTTP client.
type Client struct {
	baseURL string
	token   string
	ua      string
	http    *http.Client
}

// BookingRequest is the booking payload. CardNumber is sent exactly as displayed,
// grouped with spaces.
type BookingRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CVV            string `json:"cvv"`
	BillingAddress string `json:"billingAddress"`
	CheckInDate    string `json:"checkInDate"`
	CheckOutDate   string `json:"checkOutDate"`
	Guests         int    `json:"guests"`
	PropertyID     string `json:"propertyId"`
}

// Result is either a created booking or a rejection carrying the service's message.
type Result struct {
	BookingID string
	Message   string
	Status    int
	created   bool
}

// Created builds a successful result.
func Created(bookingID string) Result {
	return Result{BookingID: bookingID, created: true}
}

// Rejected builds a failed result. message may be empty when the service sent none.
func Rejected(status int, message string) Result {
	return Result{Status: status, Message: message}
}

// OK reports whether the booking was created.
func (r Result) OK() bool { return r.created }

// NewClient creates a new booking service client.
func NewClient(baseURL, token string, timeout time.Duration, ua string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		ua:      ua,
		http:    upstream.NewHTTPClient(timeout),
	}
}

// CreateBooking posts a booking. HTTP level failures come back as a rejected Result;
// the error return is reserved for requests that never produced a usable response.
func (c *Client) CreateBooking(ctx context.Context, p BookingRequest) (Result, error) {
	if c == nil || c.http == nil {
		return Result{}, fmt.Errorf("booking request error: client is nil")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return Result{}, fmt.Errorf("booking config error: base_url is empty")
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return Result{}, fmt.Errorf("booking request error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+bookingsPath, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("booking request error: %w", err)
	}
	upstream.PrepareRequest(ctx, req, c.token, c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, upstream.ClassifyRequestError(ctx, "booking", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Result{}, fmt.Errorf("booking response error: %w", err)
		}
		id := bookingID(body)
		if id == "" {
			return Result{}, fmt.Errorf("%w: status=%d body=%s", ErrInvalidResponse, resp.StatusCode, string(body))
		}
		return Created(id), nil
	}

	body, readErr := upstream.ReadErrorBody(resp.Body)
	if readErr != nil {
		return Rejected(resp.StatusCode, ""), nil
	}
	return Rejected(resp.StatusCode, upstream.ErrorMessage(body)), nil
}

// bookingID accepts {"id": ...} and the enveloped {"data": {"id": ...}}.
func bookingID(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"id", "data.id"} {
		v := gjson.GetBytes(body, path)
		switch v.Type {
		case gjson.String, gjson.Number:
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

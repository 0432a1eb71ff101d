package bookingapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testRequest() BookingRequest {
	return BookingRequest{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		PhoneNumber:    "+44 20 7946 0000",
		CardNumber:     "1234 5678 9012 3456",
		ExpirationDate: "12/29",
		CVV:            "123",
		BillingAddress: "12 St James's Square, London",
		CheckInDate:    "2025-06-10",
		CheckOutDate:   "2025-06-12",
		Guests:         2,
		PropertyID:     "prop-42",
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	statuses := []int{http.StatusOK, http.StatusCreated}
	for _, status := range statuses {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"invalid method"}`))
				return
			}
			if r.URL.Path != "/api/bookings" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"invalid path"}`))
				return
			}
			if r.Header.Get("Content-Type") != "application/json" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"invalid content type"}`))
				return
			}
			if r.Header.Get("Authorization") != "Bearer test-token" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"invalid auth"}`))
				return
			}
			if r.Header.Get("User-Agent") != "Staybook/1.0 booking" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"invalid user agent"}`))
				return
			}
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"id":"bk_1"}`))
		}))
		t.Cleanup(server.Close)

		client := NewClient(server.URL, "test-token", time.Second, "Staybook/1.0 booking")
		res, err := client.CreateBooking(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("expected no error for status %d, got %v", status, err)
		}
		if !res.OK() || res.BookingID != "bk_1" {
			t.Fatalf("expected created bk_1 for status %d, got %+v", status, res)
		}
	}
}

func TestCreateBookingSendsCardNumberAsDisplayed(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"bk_2"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "", time.Second, "")
	if _, err := client.CreateBooking(context.Background(), testRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["cardNumber"] != "1234 5678 9012 3456" {
		t.Fatalf("expected grouped card number, got %#v", got["cardNumber"])
	}
	if got["propertyId"] != "prop-42" {
		t.Fatalf("expected propertyId prop-42, got %#v", got["propertyId"])
	}
	if got["guests"] != float64(2) {
		t.Fatalf("expected guests 2, got %#v", got["guests"])
	}
}

func TestCreateBookingNumericAndEnvelopedID(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{body: `{"id":42}`, want: "42"},
		{body: `{"data":{"id":"bk_env"}}`, want: "bk_env"},
		{body: `{"success":true,"id":"bk_3"}`, want: "bk_3"},
	}
	for _, tc := range cases {
		body, want := tc.body, tc.want
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(server.Close)

		res, err := NewClient(server.URL, "", time.Second, "").CreateBooking(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("body %s: unexpected error %v", body, err)
		}
		if res.BookingID != want {
			t.Fatalf("body %s: expected id %q, got %q", body, want, res.BookingID)
		}
	}
}

func TestCreateBookingMissingIDIsInvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)

	_, err := NewClient(server.URL, "", time.Second, "").CreateBooking(context.Background(), testRequest())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestCreateBookingRejectedCarriesServiceMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"card declined"}`))
	}))
	t.Cleanup(server.Close)

	res, err := NewClient(server.URL, "", time.Second, "").CreateBooking(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("expected rejection without error, got %v", err)
	}
	if res.OK() {
		t.Fatal("expected rejected result")
	}
	if res.Status != http.StatusInternalServerError || res.Message != "card declined" {
		t.Fatalf("expected status=500 message=card declined, got %+v", res)
	}
}

func TestCreateBookingRejectedWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(server.Close)

	res, err := NewClient(server.URL, "", time.Second, "").CreateBooking(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("expected rejection without error, got %v", err)
	}
	if res.OK() || res.Message != "" || res.Status != http.StatusBadGateway {
		t.Fatalf("expected bare 502 rejection, got %+v", res)
	}
}

func TestCreateBookingTimeoutClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "token", 20*time.Millisecond, "")
	_, err := client.CreateBooking(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "booking timeout") {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestCreateBookingEmptyBaseURL(t *testing.T) {
	_, err := NewClient("", "token", time.Second, "").CreateBooking(context.Background(), testRequest())
	if err == nil || !strings.Contains(err.Error(), "base_url is empty") {
		t.Fatalf("expected config error, got %v", err)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validForm = `{
	"firstName": "Jane",
	"lastName": "Doe",
	"email": "jane@example.com",
	"phoneNumber": "+1 555 0100",
	"cardNumber": "4111111111111111",
	"expirationDate": "12/27",
	"cvv": "123",
	"billingAddress": "1 Main St",
	"checkInDate": "2025-06-10",
	"checkOutDate": "2025-06-12",
	"guests": 2,
	"propertyId": "prop_1"
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	out, err := run(t, "", "format", "cardNumber", "1234567890123456")
	require.NoError(t, err)
	assert.Equal(t, "1234 5678 9012 3456\n", out)

	out, err = run(t, "", "format", "cvv", "12a3b4")
	require.NoError(t, err)
	assert.Equal(t, "1234\n", out)

	_, err = run(t, "", "format", "nickname", "x")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, validForm, "validate")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	bad := strings.Replace(validForm, `"12/27"`, `"13/25"`, 1)
	out, err = run(t, bad, "validate")
	assert.ErrorIs(t, err, errInvalidForm)
	assert.Contains(t, out, "expirationDate: Expiration date must be in MM/YY format")

	_, err = run(t, `{"nickname":"x"}`, "validate")
	assert.ErrorContains(t, err, "unknown field")
}

func TestSubmitCommand(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"bk_1"}`))
	}))
	defer srv.Close()

	out, err := run(t, validForm, "submit", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "booked bk_1")
	assert.Contains(t, out, "confirmation: /booking/confirmation?bookingId=bk_1")
	assert.Equal(t, "prop_1", got["propertyId"])
	assert.Equal(t, "4111 1111 1111 1111", got["cardNumber"])
}

func TestSubmitCommandRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"card declined"}`))
	}))
	defer srv.Close()

	_, err := run(t, validForm, "submit", "--base-url", srv.URL)
	assert.EqualError(t, err, "booking failed: card declined")
}

func TestSubmitCommandNeedsProperty(t *testing.T) {
	noProperty := strings.Replace(validForm, `"propertyId": "prop_1"`, `"propertyId": ""`, 1)
	_, err := run(t, noProperty, "submit", "--base-url", "http://127.0.0.1:1")
	assert.Error(t, err)
}

package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/staybook/staybook-api/internal/pkg/logger"
	"github.com/staybook/staybook-api/internal/pkg/response"
)

// HandleError logs the error with request context and sends a formatted error response.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("error_code", code).
		Str("error_message", message).
		Int("status_code", status)

	if err != nil {
		event.Err(err)
	}

	event.Msg("Request error")

	response.Error(w, status, code, message)
}

// HandleErrorWithData logs the error and sends it together with the resource's state.
func HandleErrorWithData(ctx context.Context, w http.ResponseWriter, status int, info response.ErrorInfo, data interface{}, err error) {
	event := logger.FromContext(ctx).Warn().
		Str("error_code", info.Code).
		Str("error_message", info.Message).
		Int("status_code", status)

	if err != nil {
		event.Err(err)
	}

	event.Msg("Request error")

	response.ErrorInfoWithData(w, status, info, data)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	logger.FromContext(ctx).Warn().
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")
}

// LogExternalServiceError logs errors from external service calls
func LogExternalServiceError(ctx context.Context, service string, endpoint string, err error) {
	logger.FromContext(ctx).Error().
		Str("external_service", service).
		Str("endpoint", endpoint).
		Err(err).
		Msg("External service error")
}

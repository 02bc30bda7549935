package errorhandler

import (
	"context"
	"net/http"

	"github.com/tutorhub/tutorhub-api/internal/pkg/logger"
	"github.com/tutorhub/tutorhub-api/internal/pkg/response"
)

// HandleError logs err with the request id and sends an error envelope.
// The underlying error is never written to the client.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("request_id", logger.RequestID(ctx)).
		Str("error_code", code).
		Int("status_code", status)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(message)

	response.Error(w, status, code, message)
}

// HandlePanic logs a recovered panic and sends a 500
func HandlePanic(ctx context.Context, w http.ResponseWriter, recovered interface{}, stack string) {
	logger.FromContext(ctx).Error().
		Str("request_id", logger.RequestID(ctx)).
		Interface("panic", recovered).
		Str("stack", stack).
		Msg("Panic recovered")

	response.InternalError(w)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Str("request_id", logger.RequestID(ctx)).
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}

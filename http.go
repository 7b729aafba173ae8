package users

import (
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-users/middleware/requestlog"
)

// ErrorResponse is the uniform error body: a short code plus human text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationError is the body returned for handler validation failures.
// The capitalized key is a deliberately distinct shape, kept apart from
// ErrorResponse for compatibility with existing clients.
type ValidationError struct {
	Error string `json:"Error"`
}

// RespondJSON writes a JSON response and records the status under the
// requestlog locals key so the logging stage can report it.
func RespondJSON(ctx router.Context, status int, payload any) error {
	ctx.Locals(requestlog.ResponseStatusKey, status)
	return ctx.JSON(status, payload)
}

// RespondNoContent writes an empty response, recording the status.
func RespondNoContent(ctx router.Context, status int) error {
	ctx.Locals(requestlog.ResponseStatusKey, status)
	return ctx.NoContent(status)
}

// RespondError writes an ErrorResponse body with the given status.
func RespondError(ctx router.Context, status int, short, message string) error {
	return RespondJSON(ctx, status, ErrorResponse{
		Error:   short,
		Message: message,
	})
}

// RespondValidationError writes the 400 ValidationError body.
func RespondValidationError(ctx router.Context, reason string) error {
	return RespondJSON(ctx, router.StatusBadRequest, ValidationError{
		Error: reason,
	})
}

package errors

import (
	"fmt"
	"strings"
)

// NewValidationError creates a new validation error.
func NewValidationError(code int, field string, messages ...string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Messages: messages}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, strings.Join(e.Messages, ", "))
}

// NewHTTPError returns a new HTTPError with the given status and message.
// An empty message falls back to the default text for the status.
func NewHTTPError(status int, message string) *HTTPError {
	if message == "" {
		message = statusText[status]
	}
	return &HTTPError{Code: status, Message: message, StatusCode: status}
}

func (e *HTTPError) Error() string {
	return e.Message
}

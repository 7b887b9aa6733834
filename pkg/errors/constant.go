package errors

import "net/http"

const (
	// MessageUnauthorized is the default message for 401.
	MessageUnauthorized = "Unauthorized"
	// MessageForbidden is the default message for 403.
	MessageForbidden = "Forbidden"
	// MessageUnavailable is the default message for 503.
	MessageUnavailable = "Service unavailable"
)

// Validation error codes surfaced in response envelopes.
const (
	CodeInvalidBody  = 40001
	CodeInvalidState = 40002
	CodeInvalidKey   = 40003
	CodeUnknownItem  = 40401
)

var statusText = map[int]string{
	http.StatusUnauthorized:       MessageUnauthorized,
	http.StatusForbidden:          MessageForbidden,
	http.StatusServiceUnavailable: MessageUnavailable,
}

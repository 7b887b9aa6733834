package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHTTPErrorDefaultsMessage(t *testing.T) {
	err := NewHTTPError(http.StatusForbidden, "")
	assert.Equal(t, MessageForbidden, err.Error())
	assert.Equal(t, http.StatusForbidden, err.StatusCode)

	custom := NewHTTPError(http.StatusUnauthorized, "token expired")
	assert.Equal(t, "token expired", custom.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError(CodeInvalidState, "state", "must be visible or hidden")
	assert.Equal(t, "state: must be visible or hidden", err.Error())
}

package http

import (
	"net/http"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/errors"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

var (
	errInvalidBody  = errors.NewValidationError(errors.CodeInvalidBody, "body", `expected {"state":"visible|hidden"}`)
	errInvalidState = errors.NewValidationError(errors.CodeInvalidState, "state", "must be visible or hidden")
)

var errMap = response.ErrorMapping{
	visibility.ErrEmitterClosed: errors.NewHTTPError(http.StatusServiceUnavailable, ""),
}

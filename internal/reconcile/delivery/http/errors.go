package http

import "github.com/HaokunYang123/routine-craft-bot-sub002/pkg/errors"

var (
	errInvalidBody = errors.NewValidationError(errors.CodeInvalidBody, "body", `expected {"keys":[["token",...],...]}`)
	errInvalidKey  = errors.NewValidationError(errors.CodeInvalidKey, "keys", "every key needs at least one non-empty token")
)

package scope

import "errors"

var (
	// ErrMissingScope is returned when a context carries no session scope.
	ErrMissingScope = errors.New("scope: missing from context")
	// ErrInvalidRole is returned when token claims name an unknown role.
	ErrInvalidRole = errors.New("scope: invalid role")
)

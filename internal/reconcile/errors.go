package reconcile

import "errors"

var (
	ErrEmptyKey     = errors.New("reconcile: query key has no tokens")
	ErrEmptyToken   = errors.New("reconcile: query key has an empty token")
	ErrMalformedKey = errors.New("reconcile: malformed query key")
)

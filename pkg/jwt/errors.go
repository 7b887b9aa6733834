package jwt

import "errors"

var (
	// ErrInvalidToken is returned when a token is malformed, expired or badly signed.
	ErrInvalidToken = errors.New("jwt: invalid token")
	// ErrMissingSubject is returned when a valid token has no subject.
	ErrMissingSubject = errors.New("jwt: missing subject")
	// ErrSecretTooShort is returned by New for weak secrets.
	ErrSecretTooShort = errors.New("jwt: secret key too short")
)

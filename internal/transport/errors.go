package transport

import "errors"

var (
	ErrMalformedMessage = errors.New("transport: malformed message")
	ErrUnknownType      = errors.New("transport: unknown message type")
	ErrMissingData      = errors.New("transport: query_updated without data")
	ErrNotSubscribed    = errors.New("transport: channel not in subscribed set")
	ErrNoChannels       = errors.New("transport: no channels to subscribe")
)

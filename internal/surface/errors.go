package surface

import "errors"

var (
	// ErrInvalidFrame is returned when a client frame cannot be decoded.
	ErrInvalidFrame = errors.New("surface: invalid frame")
	// ErrUnknownFrame is returned for frame types the bridge does not handle.
	ErrUnknownFrame = errors.New("surface: unknown frame type")
	// ErrAmbiguousRegister is returned when a register frame names both keys
	// and a preset, or neither.
	ErrAmbiguousRegister = errors.New("surface: register needs exactly one of keys or preset")
	// ErrPresetsDisabled is returned for preset registers when no preset file
	// is configured.
	ErrPresetsDisabled = errors.New("surface: presets not configured")
	// ErrMaxConnectionsReached is returned when the hub is full.
	ErrMaxConnectionsReached = errors.New("surface: maximum connections reached")
	// ErrHubClosed is returned after Shutdown.
	ErrHubClosed = errors.New("surface: hub closed")
)

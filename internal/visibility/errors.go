package visibility

import "errors"

var (
	ErrInvalidState  = errors.New("visibility: invalid state")
	ErrEmitterClosed = errors.New("visibility: emitter closed")
)

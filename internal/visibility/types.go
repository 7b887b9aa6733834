package visibility

import (
	"context"
	"fmt"
)

// State is the host's foreground/background status.
type State string

const (
	Visible State = "visible"
	Hidden  State = "hidden"
)

// ParseState maps a reported string to a State.
func ParseState(s string) (State, error) {
	switch State(s) {
	case Visible, Hidden:
		return State(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
}

// Listener receives every notification. It runs on the source's delivery
// goroutine and must not block.
type Listener func(ctx context.Context, state State)

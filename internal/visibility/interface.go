package visibility

import "context"

// Source is the host visibility API. Notifications are level-triggered: a
// source may report Visible several times in a row.
type Source interface {
	// Current returns the most recently delivered state.
	Current() State
	// Subscribe adds a listener. The returned func removes it; calling it
	// more than once is a no-op.
	Subscribe(l Listener) (unsubscribe func())
}

// Reporter accepts state reports from the host (signals, HTTP, sockets).
type Reporter interface {
	Report(ctx context.Context, state State) error
}

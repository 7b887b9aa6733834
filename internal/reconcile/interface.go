package reconcile

import "context"

// Invalidator is the cache layer's invalidation primitive. Invalidate must be
// idempotent and return immediately; re-fetch scheduling, retry and failure
// reporting belong to the implementation.
type Invalidator interface {
	Invalidate(ctx context.Context, key QueryKey)
}

// UseCase is the visibility reconciliation trigger.
type UseCase interface {
	// Register subscribes set to visibility notifications. Every visible
	// notification invalidates each key once, in declared order. The set is
	// copied; an invalid set panics.
	Register(set Set) CancelFunc
	// Reconcile issues one sweep over set immediately.
	Reconcile(ctx context.Context, set Set) error
	// Active returns the number of live registrations.
	Active() int
}

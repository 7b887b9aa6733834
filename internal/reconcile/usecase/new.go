package usecase

import (
	"sync/atomic"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

type implUseCase struct {
	l           log.Logger
	source      visibility.Source
	invalidator reconcile.Invalidator
	active      atomic.Int64
}

// New creates the reconciliation trigger. A nil source leaves the trigger in
// degraded mode: registrations succeed but never fire. A nil invalidator panics.
func New(l log.Logger, source visibility.Source, invalidator reconcile.Invalidator) reconcile.UseCase {
	if invalidator == nil {
		panic("reconcile: invalidator is required")
	}
	return &implUseCase{
		l:           l,
		source:      source,
		invalidator: invalidator,
	}
}

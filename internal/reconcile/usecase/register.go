package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
)

func (uc *implUseCase) Register(set reconcile.Set) reconcile.CancelFunc {
	if err := set.Validate(); err != nil {
		panic(fmt.Sprintf("reconcile: invalid reconciliation set: %v", err))
	}

	ctx := context.Background()
	if uc.source == nil {
		uc.l.Warn(ctx, "reconcile: no visibility source, reconciliation will never fire")
		return func() {}
	}

	keys := set.Clone()
	unsubscribe := uc.source.Subscribe(func(ctx context.Context, state visibility.State) {
		if state != visibility.Visible {
			return
		}
		uc.sweep(ctx, keys, triggerVisible)
	})

	uc.active.Add(1)
	registrationsGauge.Inc()
	uc.l.Debugf(ctx, "reconcile: registered set of %d keys", len(keys))

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			uc.active.Add(-1)
			registrationsGauge.Dec()
			uc.l.Debugf(ctx, "reconcile: released set of %d keys", len(keys))
		})
	}
}

func (uc *implUseCase) Reconcile(ctx context.Context, set reconcile.Set) error {
	if err := set.Validate(); err != nil {
		return err
	}
	uc.sweep(ctx, set, triggerManual)
	return nil
}

func (uc *implUseCase) Active() int {
	return int(uc.active.Load())
}

// sweep issues one invalidation per key in declared order. Invalidate is
// fire-and-forget, so a sweep never waits on a refetch.
func (uc *implUseCase) sweep(ctx context.Context, keys reconcile.Set, trigger string) {
	sweepsCounter.WithLabelValues(trigger).Inc()
	for _, k := range keys {
		uc.invalidator.Invalidate(ctx, k)
		invalidationsCounter.Inc()
	}
	uc.l.Debugf(ctx, "reconcile: %s sweep issued %d invalidations", trigger, len(keys))
}

package surface

import (
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/querycache"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
)

// Presets resolves named ReconciliationSets.
type Presets interface {
	Lookup(name string) (reconcile.Set, error)
}

// Feed publishes refreshed query values. The query cache implements it.
type Feed interface {
	Watch(o querycache.Observer) (stop func())
}

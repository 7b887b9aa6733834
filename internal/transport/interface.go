package transport

import (
	"context"
	"encoding/json"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
)

// Handler receives routed push messages. The query cache implements it.
type Handler interface {
	Apply(ctx context.Context, key reconcile.QueryKey, data json.RawMessage)
	Invalidate(ctx context.Context, key reconcile.QueryKey)
}

// Route dispatches a validated message to h.
func Route(ctx context.Context, h Handler, m Message) {
	switch m.Type {
	case MessageQueryUpdated:
		h.Apply(ctx, m.QueryKey, m.Data)
	case MessageQueryStale:
		h.Invalidate(ctx, m.QueryKey)
	}
}

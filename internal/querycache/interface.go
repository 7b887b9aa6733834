package querycache

import (
	"context"
	"encoding/json"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
)

// Fetcher loads the authoritative value for a query key.
type Fetcher interface {
	Fetch(ctx context.Context, key reconcile.QueryKey) (json.RawMessage, error)
}

// Observer is called after every successful refresh or applied update.
// It runs on the refreshing goroutine and must not block.
type Observer func(key reconcile.QueryKey, data json.RawMessage)

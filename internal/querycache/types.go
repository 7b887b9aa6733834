package querycache

import (
	"encoding/json"
	"time"
)

// Config tunes the in-memory store.
type Config struct {
	MaxEntries     int64
	RefetchTimeout time.Duration
}

type entry struct {
	data      json.RawMessage
	updatedAt time.Time
}

// HTTPConfig configures HTTPFetcher.
type HTTPConfig struct {
	BaseURL      string
	Token        string
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
}

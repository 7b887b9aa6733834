package redis

import "time"

const (
	resubscribeInitialInterval = 500 * time.Millisecond
	resubscribeMaxInterval     = 30 * time.Second
)

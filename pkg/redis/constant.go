package redis

import "time"

// DefaultConnectTimeout bounds the PING issued by Dial.
const DefaultConnectTimeout = 5 * time.Second

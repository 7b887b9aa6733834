package jwt

import "time"

const (
	// MinSecretKeyLen is the minimum HMAC secret length accepted by New.
	MinSecretKeyLen = 32
	// DefaultTTL is used by Generate when Config.TTL is zero.
	DefaultTTL = 24 * time.Hour
)

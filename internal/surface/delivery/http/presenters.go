package http

import (
	"strings"
	"time"
)

type WSConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	AllowedOrigins  []string
	// AttachRateLimit caps upgrade attempts per client address within
	// AttachWindow. Zero disables the limit.
	AttachRateLimit int
	AttachWindow    time.Duration
}

type upgradeReq struct {
	Token string `form:"token"`
}

func (r upgradeReq) validate() error {
	if r.Token == "" {
		return errMissingToken
	}
	return nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

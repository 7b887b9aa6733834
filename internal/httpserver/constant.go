package httpserver

import "time"

const (
	Api = "/api/v1"

	serviceName            = "routine-sync-agent"
	defaultShutdownTimeout = 10 * time.Second
	healthPingTimeout      = 2 * time.Second
	subscribeMaxInterval   = 30 * time.Second
)

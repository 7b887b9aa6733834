package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/errors"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

type pushHealth struct {
	Redis         string     `json:"redis"`
	Active        bool       `json:"active"`
	Channels      []string   `json:"channels"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Resubscribes  int64      `json:"resubscribes"`
}

type healthResp struct {
	Status              string     `json:"status"`
	Service             string     `json:"service"`
	UptimeSeconds       int64      `json:"uptime_seconds"`
	Visibility          string     `json:"visibility"`
	ActiveRegistrations int        `json:"active_registrations"`
	ActiveConnections   int        `json:"active_connections"`
	Push                pushHealth `json:"push"`
}

// redisStatus reports "connected", "unreachable" or "disabled".
func (srv *HTTPServer) redisStatus(ctx context.Context) string {
	if srv.redis == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if _, err := srv.redis.Ping(ctx); err != nil {
		srv.logger.Warnf(ctx, "httpserver.redisStatus.Ping: %v", err)
		return "unreachable"
	}
	return "connected"
}

func (srv *HTTPServer) pushHealth(ctx context.Context) pushHealth {
	ph := pushHealth{Redis: srv.redisStatus(ctx), Channels: []string{}}
	if srv.subscriber == nil {
		return ph
	}
	info := srv.subscriber.HealthInfo()
	ph.Active = info.Active
	ph.Resubscribes = info.Resubscribes
	if info.Channels != nil {
		ph.Channels = info.Channels
	}
	if !info.LastMessageAt.IsZero() {
		at := info.LastMessageAt
		ph.LastMessageAt = &at
	}
	return ph
}

// healthCheck always answers 200 and reports "degraded" while the push
// transport is missing.
// @Summary Health Check
// @Description Agent status including push transport and reconciliation state
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Agent is up"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	push := srv.pushHealth(ctx)
	status := "healthy"
	if push.Redis != "connected" || !push.Active {
		status = "degraded"
	}

	response.OK(c, healthResp{
		Status:              status,
		Service:             serviceName,
		UptimeSeconds:       int64(time.Since(srv.startedAt).Seconds()),
		Visibility:          string(srv.visSource.Current()),
		ActiveRegistrations: srv.reconcileUC.Active(),
		ActiveConnections:   srv.hub.GetStats().ActiveConnections,
		Push:                push,
	})
}

// readyCheck fails while the push transport is unreachable.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Redis connected"
// @Failure 503 {object} response.Resp "Redis connection not available"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if srv.redisStatus(ctx) != "connected" {
		response.Error(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection not available"))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": serviceName,
		"redis":   "connected",
	})
}

// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": serviceName,
	})
}

package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/jwt"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

type Handler struct {
	hub           *surface.Hub
	jwtMgr        jwt.Manager
	sessionUserID string
	upgrader      websocket.Upgrader
	limiter       *attachLimiter
	l             log.Logger
}

// New creates the bridge handler. Only tokens whose subject equals
// sessionUserID may attach.
func New(l log.Logger, hub *surface.Hub, jwtMgr jwt.Manager, sessionUserID string, wsCfg WSConfig) *Handler {
	return &Handler{
		hub:           hub,
		jwtMgr:        jwtMgr,
		sessionUserID: sessionUserID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  wsCfg.ReadBufferSize,
			WriteBufferSize: wsCfg.WriteBufferSize,
			CheckOrigin:     checkOrigin(wsCfg.AllowedOrigins),
		},
		limiter: newAttachLimiter(wsCfg.AttachRateLimit, wsCfg.AttachWindow),
		l:       l,
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

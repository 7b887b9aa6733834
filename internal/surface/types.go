package surface

import (
	"encoding/json"
	"time"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
)

// FrameType identifies a WebSocket frame.
type FrameType string

const (
	// Client -> server.
	FrameRegister   FrameType = "register"
	FrameVisibility FrameType = "visibility"

	// Server -> client.
	FrameRegistered   FrameType = "registered"
	FrameQueryUpdated FrameType = "query_updated"
	FrameError        FrameType = "error"
)

// ClientFrame is a frame sent by a UI surface.
type ClientFrame struct {
	Type   FrameType            `json:"type"`
	Keys   []reconcile.QueryKey `json:"keys,omitempty"`
	Preset string               `json:"preset,omitempty"`
	State  string               `json:"state,omitempty"`
}

// ServerFrame is a frame pushed to a UI surface.
type ServerFrame struct {
	Type     FrameType          `json:"type"`
	QueryKey reconcile.QueryKey `json:"query_key,omitempty"`
	Data     json.RawMessage    `json:"data,omitempty"`
	Keys     int                `json:"keys,omitempty"`
	Message  string             `json:"message,omitempty"`
}

// Config holds connection tuning for the bridge.
type Config struct {
	MaxConnections int
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

// HubStats represents hub statistics
type HubStats struct {
	ActiveConnections int   `json:"active_connections"`
	TotalPushed       int64 `json:"total_pushed"`
	TotalDropped      int64 `json:"total_dropped"`
}

type update struct {
	key  reconcile.QueryKey
	data json.RawMessage
}

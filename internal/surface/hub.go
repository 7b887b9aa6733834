package surface

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// Hub owns the connected UI surfaces. Each surface declares a
// ReconciliationSet, reports visibility and receives refreshed values for
// the keys in its set.
type Hub struct {
	connections map[*Connection]struct{}
	count       atomic.Int64

	register   chan *Connection
	unregister chan *Connection
	updates    chan update

	uc       reconcile.UseCase
	reporter visibility.Reporter
	presets  Presets
	feed     Feed

	cfg    Config
	logger log.Logger

	totalPushed  atomic.Int64
	totalDropped atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates a Hub. presets may be nil, in which case preset registers
// are rejected.
func NewHub(logger log.Logger, cfg Config, uc reconcile.UseCase, reporter visibility.Reporter, feed Feed, presets Presets) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		connections: make(map[*Connection]struct{}),
		register:    make(chan *Connection, 16),
		unregister:  make(chan *Connection, 16),
		updates:     make(chan update, updateQueueSize),
		uc:          uc,
		reporter:    reporter,
		presets:     presets,
		feed:        feed,
		cfg:         cfg.withDefaults(),
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	defer close(h.done)

	if h.feed != nil {
		stop := h.feed.Watch(h.onUpdate)
		defer stop()
	}

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info(context.Background(), "Surface hub shutting down...")
			h.closeAllConnections()
			return

		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case u := <-h.updates:
			h.push(u)
		}
	}
}

// Attach wraps an upgraded socket in a Connection, hands it to the hub and
// starts its pumps.
func (h *Hub) Attach(ws *websocket.Conn, userID string) (*Connection, error) {
	conn := newConnection(h, ws, userID)

	select {
	case h.register <- conn:
	case <-h.ctx.Done():
		_ = ws.Close()
		return nil, ErrHubClosed
	}

	conn.Start()
	return conn, nil
}

// onUpdate runs on the feed's goroutine and must not block.
func (h *Hub) onUpdate(key reconcile.QueryKey, data json.RawMessage) {
	select {
	case h.updates <- update{key: key.Clone(), data: data}:
	default:
		h.totalDropped.Add(1)
		h.logger.Warnf(context.Background(), "Surface update queue full, dropping %s", key)
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	if len(h.connections) >= h.cfg.MaxConnections {
		h.logger.Warnf(context.Background(), "Max surface connections reached, rejecting user: %s", conn.userID)
		go conn.Close()
		return
	}

	h.connections[conn] = struct{}{}
	h.count.Store(int64(len(h.connections)))

	h.logger.Infof(context.Background(), "Surface connected: %s (total connections: %d)", conn.userID, len(h.connections))
}

func (h *Hub) unregisterConnection(conn *Connection) {
	conn.release()

	if _, ok := h.connections[conn]; !ok {
		return
	}
	delete(h.connections, conn)
	close(conn.send)
	h.count.Store(int64(len(h.connections)))

	h.logger.Infof(context.Background(), "Surface disconnected: %s (remaining connections: %d)", conn.userID, len(h.connections))
}

// push sends u to every connection whose set contains its key.
func (h *Hub) push(u update) {
	var data []byte
	for conn := range h.connections {
		if !conn.watches(u.key) {
			continue
		}
		if data == nil {
			var err error
			data, err = json.Marshal(ServerFrame{Type: FrameQueryUpdated, QueryKey: u.key, Data: u.data})
			if err != nil {
				h.logger.Errorf(context.Background(), "Failed to marshal update for %s: %v", u.key, err)
				h.totalDropped.Add(1)
				return
			}
		}

		select {
		case conn.send <- data:
			h.totalPushed.Add(1)
		default:
			h.totalDropped.Add(1)
			h.logger.Warnf(context.Background(), "Failed to push %s to %s (buffer full)", u.key, conn.userID)
		}
	}
}

func (h *Hub) closeAllConnections() {
	for conn := range h.connections {
		conn.release()
		conn.Close()
	}
	h.connections = make(map[*Connection]struct{})
	h.count.Store(0)
}

// GetStats returns hub statistics
func (h *Hub) GetStats() HubStats {
	return HubStats{
		ActiveConnections: int(h.count.Load()),
		TotalPushed:       h.totalPushed.Load(),
		TotalDropped:      h.totalDropped.Load(),
	}
}

// Shutdown gracefully shuts down the hub
func (h *Hub) Shutdown(ctx context.Context) error {
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

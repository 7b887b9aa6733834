package surface

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
)

// Connection is one mounted UI surface.
type Connection struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	// Buffered channel of outbound frames. Only the hub closes it.
	send chan []byte

	mu       sync.Mutex
	set      reconcile.Set
	cancel   reconcile.CancelFunc
	released bool

	closeOnce sync.Once
	done      chan struct{}
}

func newConnection(hub *Hub, conn *websocket.Conn, userID string) *Connection {
	return &Connection{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, hub.cfg.SendBuffer),
		done:   make(chan struct{}),
	}
}

// Start starts the connection's read and write pumps
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the underlying socket. The read pump then unregisters.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Set returns a copy of the connection's current ReconciliationSet.
func (c *Connection) Set() reconcile.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Clone()
}

// readPump handles client frames until the socket fails.
func (c *Connection) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
			c.release()
		}
		c.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongWait))
	})

	ctx := c.hub.logger.With(context.Background(), "user_id", c.userID)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warnf(ctx, "Surface read error: %v", err)
			}
			return
		}

		if err := c.handleFrame(ctx, message); err != nil {
			c.hub.logger.Warnf(ctx, "Rejected surface frame: %v", err)
			c.reply(ServerFrame{Type: FrameError, Message: err.Error()})
		}
	}
}

// writePump is the only writer on the socket.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Connection) handleFrame(ctx context.Context, raw []byte) error {
	var frame ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}

	switch frame.Type {
	case FrameRegister:
		set, err := c.resolve(frame)
		if err != nil {
			return err
		}
		c.replace(set)
		c.reply(ServerFrame{Type: FrameRegistered, Keys: len(set)})
		return nil

	case FrameVisibility:
		state, err := visibility.ParseState(frame.State)
		if err != nil {
			return err
		}
		return c.hub.reporter.Report(ctx, state)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrame, frame.Type)
	}
}

func (c *Connection) resolve(frame ClientFrame) (reconcile.Set, error) {
	hasKeys, hasPreset := len(frame.Keys) > 0, frame.Preset != ""

	var set reconcile.Set
	switch {
	case hasKeys == hasPreset:
		return nil, ErrAmbiguousRegister
	case hasPreset:
		if c.hub.presets == nil {
			return nil, ErrPresetsDisabled
		}
		var err error
		if set, err = c.hub.presets.Lookup(frame.Preset); err != nil {
			return nil, err
		}
	default:
		set = reconcile.Set(frame.Keys)
	}

	// Validate here so Register never sees a set it would panic on.
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// replace registers set and releases the previous registration, if any.
func (c *Connection) replace(set reconcile.Set) {
	cancel := c.hub.uc.Register(set)

	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		cancel()
		return
	}
	old := c.cancel
	c.set, c.cancel = set.Clone(), cancel
	c.mu.Unlock()

	if old != nil {
		old()
	}
}

// release cancels the connection's registration exactly once. Registers
// arriving afterwards are cancelled immediately.
func (c *Connection) release() {
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	c.set, c.cancel, c.released = nil, nil, true
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Connection) watches(key reconcile.QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Contains(key)
}

// reply queues a frame from the read pump. Frames are dropped when the
// buffer is full.
func (c *Connection) reply(f ServerFrame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn(context.Background(), "Surface send buffer full, dropping reply")
	}
}

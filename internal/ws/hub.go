package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"display-service/internal/display"
)

const (
	// writeTimeout bounds a single snapshot push.
	writeTimeout = 5 * time.Second
	// maxClientFrame caps inbound frames; clients have nothing to say.
	maxClientFrame = 512
)

// Connection wraps a websocket.Conn with liveness metadata. The mutex
// serializes writes, which arrive from both broadcasts and heartbeats.
type Connection struct {
	conn *websocket.Conn

	mu       sync.Mutex
	lastSeen time.Time
}

func (c *Connection) touch() {
	c.mu.Lock()
	c.lastSeen = time.Now()
	c.mu.Unlock()
}

func (c *Connection) seen() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

func (c *Connection) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

func (c *Connection) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
}

// ReadLoop consumes and discards client frames until the connection drops.
// The display surface is push-only; reading exists solely to service pongs
// and detect disconnects.
func (c *Connection) ReadLoop(idleTimeout time.Duration) {
	c.conn.SetReadLimit(maxClientFrame)
	_ = c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.touch()
		return c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub fans display snapshots out to connected UI clients. The display is
// shared, so every client receives every broadcast.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*Connection]struct{}
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		conns:  make(map[*Connection]struct{}),
		logger: logger,
	}
}

// Add registers a connection and immediately pushes the given snapshot so
// late joiners converge on the current display state.
func (h *Hub) Add(conn *websocket.Conn, snap display.Snapshot) *Connection {
	c := &Connection{conn: conn, lastSeen: time.Now()}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()

	if err := c.write(snap); err != nil {
		h.logger.Warn().Err(err).Msg("ws: initial snapshot push failed")
	}
	h.logger.Debug().Int("clients", total).Msg("ws: client connected")
	return c
}

// Remove closes and forgets a connection. Safe to call more than once.
func (h *Hub) Remove(c *Connection) {
	h.mu.Lock()
	_, ok := h.conns[c]
	delete(h.conns, c)
	h.mu.Unlock()
	if !ok {
		return
	}
	_ = c.conn.Close()
	h.logger.Debug().Msg("ws: client disconnected")
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast pushes a snapshot to every connected client. Clients that fail
// the write are dropped.
func (h *Hub) Broadcast(snap display.Snapshot) {
	for _, c := range h.snapshotConns() {
		if err := c.write(snap); err != nil {
			h.logger.Warn().Err(err).Msg("ws: broadcast failed, dropping client")
			h.Remove(c)
		}
	}
}

// Heartbeat pings clients at the given interval until ctx is cancelled,
// dropping any that have not answered for two intervals.
func (h *Hub) Heartbeat(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, c := range h.snapshotConns() {
				if time.Since(c.seen()) > 2*interval {
					h.Remove(c)
					continue
				}
				if err := c.ping(); err != nil {
					h.Remove(c)
				}
			}
		}
	}
}

// CloseAll drops every client. Used at shutdown.
func (h *Hub) CloseAll() {
	for _, c := range h.snapshotConns() {
		h.Remove(c)
	}
}

// snapshotConns copies the connection set so iteration never holds the lock
// across network writes.
func (h *Hub) snapshotConns() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*Connection, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	return conns
}

// Package ws implements the connection dispatcher: one goroutine per
// connection, framing and dispatch over the wire codec, an
// authentication gate, and disconnect cleanup. The protocol is strictly
// request/response — the server never initiates a packet — so there is
// no broadcast path, only a read-dispatch-write loop.
package ws

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"dicehouse/engine"
	"dicehouse/session"
	"dicehouse/store"
	"dicehouse/wire"
)

const (
	maxMessageSize = 1 << 20 // 1 MiB
	pingInterval   = 20 * time.Second
	pingTimeout    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientCount feeds the connect/disconnect log lines only.
var clientCount int64

// Dispatcher wires the pieces a connection needs: the state store, the
// game engine, the rate limiter, and a session-token generator.
type Dispatcher struct {
	Store       *store.Store
	Engine      *engine.Engine
	RateLimiter *session.RateLimiter
	NewToken    store.TokenGenerator
}

// Handle upgrades r to a WebSocket and runs its per-connection loop
// until the peer disconnects. Registered as an http.HandlerFunc by
// cmd/dicehouse/main.go.
func (d *Dispatcher) Handle(w http.ResponseWriter, r *http.Request) {
	log.Println("📥 WebSocket connection attempt from:", r.RemoteAddr)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("❌ WebSocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	atomic.AddInt64(&clientCount, 1)
	log.Printf("✅ Client connected: %s! Total clients: %d\n", r.RemoteAddr, atomic.LoadInt64(&clientCount))
	defer func() {
		atomic.AddInt64(&clientCount, -1)
		log.Printf("👋 Client disconnected: %s. Total clients: %d\n", r.RemoteAddr, atomic.LoadInt64(&clientCount))
	}()

	c := &connection{
		id:         store.ConnID(r.RemoteAddr + "#" + time.Now().Format("150405.000000")),
		conn:       conn,
		dispatcher: d,
	}
	c.configureTransport()
	defer c.cleanup()

	c.loop()
}

// connection holds per-connection state: the authenticated flag and
// user id (0 before auth). writeMu serializes frame writes against the
// ping loop.
type connection struct {
	id         store.ConnID
	conn       *websocket.Conn
	dispatcher *Dispatcher

	authenticated bool
	userID        int

	writeMu sync.Mutex
}

func (c *connection) configureTransport() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pingInterval + pingTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pingInterval + pingTimeout))
	})

	go c.pingLoop()
}

// pingLoop sends a ping every pingInterval; an unanswered ping lets the
// read deadline above fire, which closes the connection and runs
// cleanup.
func (c *connection) pingLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for range ticker.C {
		c.writeMu.Lock()
		err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingTimeout))
		c.writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

// loop is the per-connection receive loop: read one binary frame,
// decode, rate-limit, dispatch, respond. Requests on a single
// connection are handled strictly in FIFO order.
func (c *connection) loop() {
	for {
		msgType, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.BinaryMessage {
			c.sendError(wire.ErrCodeInvalidFormat, "text frames are not accepted", "")
			continue
		}

		cmdID, body, err := wire.DecodeFrame(raw)
		if err != nil {
			c.sendError(wire.ErrCodeInvalidFormat, "malformed frame", "")
			continue
		}

		if c.authenticated {
			if !c.dispatcher.RateLimiter.Allow(c.userID, time.Now()) {
				c.sendError(wire.ErrCodeRateLimit, "too many requests", "")
				continue
			}
			c.dispatcher.Store.TouchActivity(c.userID)
		}

		c.dispatch(cmdID, body)
	}
}

// cleanup runs on every exit path from loop: unbind the connection,
// leave the room, and invalidate the session — a disconnect always ends
// the session — plus drop the rate-limit record so a reconnect starts
// clean.
func (c *connection) cleanup() {
	c.dispatcher.Store.UnbindConnection(c.id)
	if c.userID != 0 {
		c.dispatcher.RateLimiter.Forget(c.userID)
	}
}

func (c *connection) writeFrame(cmdID uint32, body []byte) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.BinaryMessage, wire.EncodeFrame(cmdID, body)); err != nil {
		log.Printf("❌ write failed for %s: %v", c.id, err)
	}
}

func (c *connection) sendError(code uint32, message, details string) {
	c.writeFrame(wire.CmdErrorRsp, wire.ErrorRsp{
		ErrorCode:    code,
		ErrorMessage: message,
		Details:      details,
	}.Encode())
}

package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn wraps one browser websocket. Writes come from the session's loop
// goroutine, reads from ReadLoop.
type Conn struct {
	ID    string
	ws    *websocket.Conn
	codec Codec

	mu     sync.Mutex // guards ws writes and closed
	closed bool
}

func NewConn(ws *websocket.Conn, codec Codec) *Conn {
	ws.SetReadLimit(maxMessageSize)
	return &Conn{ID: uuid.New().String(), ws: ws, codec: codec}
}

// Send encodes msg with the connection's codec. Sending on a closed
// connection is a no-op.
func (c *Conn) Send(msg interface{}) error {
	frame, data, err := c.codec.Encode(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(frame, data)
}

// Close is safe to call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.ws.Close()
	}
}

// ReadLoop decodes client messages until the socket fails. Join requests go
// to onJoin, ready/turn/quit to onInput; onDisconnect always runs last.
func (c *Conn) ReadLoop(onJoin, onInput func(*Conn, ClientMessage), onDisconnect func(*Conn)) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			continue
		}
		switch msg.Type {
		case MsgJoin:
			onJoin(c, msg)
		case MsgReady, MsgTurn, MsgQuit:
			onInput(c, msg)
		}
	}
}

// Registry caps the number of live sessions on the server.
type Registry struct {
	mu    sync.Mutex
	limit int
	live  map[string]struct{}
}

func NewRegistry(limit int) *Registry {
	return &Registry{limit: limit, live: make(map[string]struct{})}
}

// Reserve claims a slot for id, reporting false when the server is full.
func (r *Registry) Reserve(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.live) >= r.limit {
		return false
	}
	r.live[id] = struct{}{}
	return true
}

// Release frees id's slot.
func (r *Registry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
}

// Len returns the number of reserved slots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

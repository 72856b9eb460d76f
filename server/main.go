package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Enable per-message deflate compression (RFC 7692)
	EnableCompression: true,
}

// rejectAndClose tells the client why it was turned away, then hangs up.
func rejectAndClose(c *Conn, reason string) {
	_ = c.Send(ErrorMsg{Type: MsgError, Message: reason})
	c.Close()
}

// server holds the shared state behind the websocket handler.
type server struct {
	st       Settings
	sessions *Registry
	limiter  *cooldownLimiter
}

func newServer(st Settings) *server {
	return &server{
		st:       st,
		sessions: NewRegistry(st.MaxSessions),
		limiter:  newCooldownLimiter(st.IPCooldown),
	}
}

// serveWS upgrades the request and gives the connection its own session
// once it sends a join.
func (s *server) serveWS(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	conn := NewConn(ws, ParseCodec(r.URL.Query().Get(CodecParam)))

	// Check limits after upgrade so client can receive error messages
	if !s.limiter.allow(ip, time.Now()) {
		rejectAndClose(conn, "Too many connections. Please wait a moment.")
		return
	}
	if !s.sessions.Reserve(conn.ID) {
		rejectAndClose(conn, "Server full. Please try again later.")
		return
	}
	log.Printf("player connected: %s from %s (%d live)", conn.ID, ip, s.sessions.Len())

	// game is only touched from the ReadLoop goroutine
	var game *GameLoop

	onJoin := func(c *Conn, msg ClientMessage) {
		if game != nil {
			_ = c.Send(ErrorMsg{Type: MsgError, Message: "session already started"})
			return
		}
		cfg, err := s.st.sessionConfig(msg)
		if err == nil {
			game, err = StartGameLoop(c, cfg)
		}
		if err != nil {
			_ = c.Send(ErrorMsg{Type: MsgError, Message: err.Error()})
			return
		}
		log.Printf("session started for %s: %dx%d, %d player(s)", c.ID, cfg.Cols, cfg.Rows, cfg.Players)
	}

	onInput := func(c *Conn, msg ClientMessage) {
		if game == nil {
			return
		}
		if ev, ok := msg.Event(); ok {
			game.Send(ev)
		}
	}

	onDisconnect := func(c *Conn) {
		if game != nil {
			game.Stop()
		}
		s.sessions.Release(c.ID)
		log.Printf("player disconnected: %s", c.ID)
	}

	conn.ReadLoop(onJoin, onInput, onDisconnect)
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, s.serveWS)
	mux.Handle("/", http.FileServer(http.Dir(s.st.StaticDir)))
	return mux
}

func main() {
	st, err := LoadSettings()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	srv := newServer(st)

	// Cleanup stale limiter entries every 60s
	go func() {
		for now := range time.Tick(60 * time.Second) {
			srv.limiter.sweep(now)
		}
	}()

	log.Printf("server listening on %s (default grid %dx%d, %d player(s))",
		st.Addr, st.Defaults.Cols, st.Defaults.Rows, st.Defaults.Players)
	if err := http.ListenAndServe(st.Addr, srv.routes()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

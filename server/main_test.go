package main

import (
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"gridsnake/engine"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := Settings{
		StaticDir:   t.TempDir(),
		Defaults:    engine.DefaultConfig(),
		MaxSessions: 4,
		IPCooldown:  0,
	}
	srv := httptest.NewServer(newServer(st).routes())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + WebSocketPath + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readJSON(t *testing.T, ws *websocket.Conn, v interface{}) {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("Expected a frame, got %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Expected JSON frame, got %v (%s)", err, data)
	}
}

func TestJoinReadyCountdown(t *testing.T) {
	srv := testServer(t)
	ws := dial(t, srv, "")

	if err := ws.WriteJSON(ClientMessage{Type: MsgJoin, Players: 2}); err != nil {
		t.Fatal(err)
	}
	var welcome WelcomeMsg
	readJSON(t, ws, &welcome)
	if welcome.Type != MsgWelcome || welcome.ID == "" {
		t.Fatalf("Expected welcome with session id, got %+v", welcome)
	}
	if welcome.Cols != engine.DefaultCols || welcome.Rows != engine.DefaultRows || welcome.Players != 2 {
		t.Errorf("Expected default grid for 2 players, got %+v", welcome)
	}

	var state StateMsg
	readJSON(t, ws, &state)
	if state.Type != MsgState || state.Phase != "ready" || len(state.Snakes) != 2 {
		t.Fatalf("Expected initial ready frame with 2 snakes, got %+v", state)
	}
	if state.Snakes[0].Segments[0] != [2]int{4, 6} {
		t.Errorf("Expected player 0 head at [4 6], got %v", state.Snakes[0].Segments[0])
	}

	_ = ws.WriteJSON(ClientMessage{Type: MsgReady, Player: 0})
	_ = ws.WriteJSON(ClientMessage{Type: MsgReady, Player: 1})
	for i := 0; i < 200; i++ {
		readJSON(t, ws, &state)
		if state.Phase == "countdown" {
			if state.Countdown != engine.CountdownSteps {
				t.Errorf("Expected countdown %d, got %d", engine.CountdownSteps, state.Countdown)
			}
			return
		}
	}
	t.Fatal("Expected countdown frame after both players are ready")
}

func TestJoinRejectsBadConfig(t *testing.T) {
	srv := testServer(t)
	ws := dial(t, srv, "")

	_ = ws.WriteJSON(ClientMessage{Type: MsgJoin, Cols: 99})
	var msg ErrorMsg
	readJSON(t, ws, &msg)
	if msg.Type != MsgError || !strings.Contains(msg.Message, "cols") {
		t.Errorf("Expected cols error, got %+v", msg)
	}
}

func TestQuitClosesConnection(t *testing.T) {
	srv := testServer(t)
	ws := dial(t, srv, "")

	_ = ws.WriteJSON(ClientMessage{Type: MsgJoin})
	var welcome WelcomeMsg
	readJSON(t, ws, &welcome)
	_ = ws.WriteJSON(ClientMessage{Type: MsgQuit})

	_ = ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				t.Fatalf("Expected server to close after quit, got %v", err)
			}
			return
		}
	}
}

func TestMsgpackCodec(t *testing.T) {
	srv := testServer(t)
	ws := dial(t, srv, "?"+CodecParam+"=msgpack")

	_ = ws.WriteJSON(ClientMessage{Type: MsgJoin})
	_ = ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	frame, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if frame != websocket.BinaryMessage {
		t.Fatalf("Expected binary frame, got %d", frame)
	}
	var welcome WelcomeMsg
	if err := msgpack.Unmarshal(data, &welcome); err != nil {
		t.Fatalf("Expected msgpack welcome, got %v", err)
	}
	if welcome.Type != MsgWelcome || welcome.Players != 1 {
		t.Errorf("Expected single-player welcome, got %+v", welcome)
	}
}

func TestCooldownLimiter(t *testing.T) {
	l := newCooldownLimiter(2 * time.Second)
	now := time.Now()
	if !l.allow("1.2.3.4", now) {
		t.Fatal("Expected first connection allowed")
	}
	if l.allow("1.2.3.4", now.Add(time.Second)) {
		t.Error("Expected second connection within cooldown rejected")
	}
	if !l.allow("5.6.7.8", now.Add(time.Second)) {
		t.Error("Expected other IP allowed")
	}
	if !l.allow("1.2.3.4", now.Add(3*time.Second)) {
		t.Error("Expected connection after cooldown allowed")
	}

	l.sweep(now.Add(4 * time.Second))
	if len(l.seen) != 1 {
		t.Errorf("Expected 1 live entry after sweep, got %d", len(l.seen))
	}
	if _, ok := l.seen["5.6.7.8"]; ok {
		t.Error("Expected sweep to drop expired entry")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(r); got != "10.0.0.1" {
		t.Errorf("Expected 10.0.0.1, got %s", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.7" {
		t.Errorf("Expected first forwarded hop, got %s", got)
	}
}

func TestRegistryLimit(t *testing.T) {
	reg := NewRegistry(2)
	if !reg.Reserve("a") || !reg.Reserve("b") {
		t.Fatal("Expected two slots")
	}
	if reg.Reserve("c") {
		t.Error("Expected third reservation refused")
	}
	reg.Release("a")
	if !reg.Reserve("c") {
		t.Error("Expected slot freed by release")
	}
	if reg.Len() != 2 {
		t.Errorf("Expected 2 live sessions, got %d", reg.Len())
	}
}

func TestServerFull(t *testing.T) {
	st := Settings{StaticDir: t.TempDir(), Defaults: engine.DefaultConfig(), MaxSessions: 0}
	srv := httptest.NewServer(newServer(st).routes())
	t.Cleanup(srv.Close)
	ws := dial(t, srv, "")

	var msg ErrorMsg
	readJSON(t, ws, &msg)
	if msg.Type != MsgError || !strings.Contains(msg.Message, "full") {
		t.Errorf("Expected server full error, got %+v", msg)
	}
}

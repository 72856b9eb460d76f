package main

import (
	"encoding/json"
	"io"
	"log"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"gridsnake/engine"
)

func TestClientMessageEvent(t *testing.T) {
	ev, ok := ClientMessage{Type: MsgTurn, Player: 1, Dir: "u"}.Event()
	if !ok || ev != engine.Turn(1, engine.Up) {
		t.Errorf("Expected turn up for player 1, got %+v ok=%v", ev, ok)
	}
	ev, ok = ClientMessage{Type: MsgReady}.Event()
	if !ok || ev != engine.Ready(0) {
		t.Errorf("Expected ready for player 0, got %+v", ev)
	}
	ev, ok = ClientMessage{Type: MsgQuit}.Event()
	if !ok || ev.Kind != engine.QuitSignal {
		t.Errorf("Expected quit, got %+v", ev)
	}
	if _, ok := (ClientMessage{Type: MsgTurn, Dir: "x"}).Event(); ok {
		t.Error("Expected unknown direction rejected")
	}
	if _, ok := (ClientMessage{Type: MsgJoin}).Event(); ok {
		t.Error("Expected join to carry no event")
	}
}

func TestClientMessageDecode(t *testing.T) {
	var msg ClientMessage
	if err := json.Unmarshal([]byte(`{"t":"j","c":20,"r":12,"n":2}`), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MsgJoin || msg.Cols != 20 || msg.Rows != 12 || msg.Players != 2 {
		t.Errorf("Expected join 20x12 for 2, got %+v", msg)
	}
}

func TestNewStateMsgReady(t *testing.T) {
	s, err := engine.NewSession(engine.DefaultConfig(), engine.WithSeed(1), engine.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatal(err)
	}
	msg := NewStateMsg(s.Snapshot())

	if msg.Type != MsgState || msg.Phase != "ready" || msg.Round != 1 {
		t.Errorf("Expected ready state for round 1, got %+v", msg)
	}
	if msg.Outcome != nil {
		t.Error("Expected no outcome before the round ends")
	}
	if msg.Food == nil || *msg.Food != [2]int{12, 7} {
		t.Errorf("Expected initial food [12 7], got %v", msg.Food)
	}
	if len(msg.Snakes) != 1 {
		t.Fatalf("Expected 1 snake, got %d", len(msg.Snakes))
	}
	want := [][2]int{{4, 7}, {3, 7}, {2, 7}}
	for i, seg := range msg.Snakes[0].Segments {
		if seg != want[i] {
			t.Errorf("Expected segment %d at %v, got %v", i, want[i], seg)
		}
	}
	if msg.Snakes[0].Color != engine.PlayerColors[0] {
		t.Errorf("Expected color %s, got %s", engine.PlayerColors[0], msg.Snakes[0].Color)
	}
}

func TestNewStateMsgOutcome(t *testing.T) {
	snap := engine.Snapshot{
		Phase:  engine.RoundOver,
		Snakes: []engine.SnakeView{},
		Scores: []int{0, 1},
		Outcome: engine.Outcome{
			Result: engine.Tie,
			Winner: -1,
			Losers: []engine.Loser{{Player: 0, Cause: engine.CrossCollision}, {Player: 1, Cause: engine.CrossCollision}},
			HeadOn: true,
			At:     engine.Cell{Col: 6, Row: 7},
		},
	}
	msg := NewStateMsg(snap)
	if msg.Outcome == nil {
		t.Fatal("Expected outcome in round-over frame")
	}
	if msg.Outcome.Result != "tie" || msg.Outcome.Winner != -1 || len(msg.Outcome.Losers) != 2 {
		t.Errorf("Expected tie with two losers, got %+v", msg.Outcome)
	}
	if msg.Outcome.HeadOn == nil || *msg.Outcome.HeadOn != [2]int{6, 7} {
		t.Errorf("Expected head-on at [6 7], got %v", msg.Outcome.HeadOn)
	}
	if msg.Food != nil {
		t.Error("Expected no food when snapshot has none")
	}
}

func TestCodecEncode(t *testing.T) {
	msg := ErrorMsg{Type: MsgError, Message: "nope"}

	frame, data, err := CodecJSON.Encode(msg)
	if err != nil || frame != websocket.TextMessage {
		t.Fatalf("Expected JSON text frame, got %d err=%v", frame, err)
	}
	if string(data) != `{"t":"e","m":"nope"}` {
		t.Errorf("Expected compact JSON, got %s", data)
	}

	frame, data, err = ParseCodec("msgpack").Encode(msg)
	if err != nil || frame != websocket.BinaryMessage {
		t.Fatalf("Expected msgpack binary frame, got %d err=%v", frame, err)
	}
	var back ErrorMsg
	if err := msgpack.Unmarshal(data, &back); err != nil || back != msg {
		t.Errorf("Expected %+v from msgpack, got %+v err=%v", msg, back, err)
	}

	if ParseCodec("xml") != CodecJSON {
		t.Error("Expected unknown codec to fall back to JSON")
	}
}

func TestSessionConfig(t *testing.T) {
	st := Settings{Defaults: engine.DefaultConfig()}

	cfg, err := st.sessionConfig(ClientMessage{Type: MsgJoin, Players: 2})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cols != engine.DefaultCols || cfg.Rows != engine.DefaultRows || cfg.Players != 2 {
		t.Errorf("Expected defaults with 2 players, got %+v", cfg)
	}
	if _, err := st.sessionConfig(ClientMessage{Type: MsgJoin, Players: 3}); err == nil {
		t.Error("Expected 3 players rejected")
	}
}

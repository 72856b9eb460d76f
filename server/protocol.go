package main

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"gridsnake/engine"
)

// Protocol uses single-character keys to minimize wire size.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "j" = join   {"t":"j","c":17,"r":15,"n":2}   (zero/omitted → server default)
//     "y" = ready  {"t":"y","p":0}
//     "v" = turn   {"t":"v","p":1,"d":"u"}          (d = r/l/u/d)
//     "q" = quit   {"t":"q"}
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","c":17,"r":15,"n":2}
//     "s" = state   {"t":"s","k":1,"h":"playing",...}
//     "e" = error   {"t":"e","m":"message"}
//
// SnakeDTO: {"p":0,"c":"#0064ff","s":[[col,row],...]}   head first
// State frames are JSON text by default, msgpack binary with ?codec=msgpack.

// Message type identifiers
const (
	MsgJoin    = "j"
	MsgReady   = "y"
	MsgTurn    = "v"
	MsgQuit    = "q"
	MsgWelcome = "w"
	MsgState   = "s"
	MsgError   = "e"
)

// ClientMessage is the incoming message from the browser.
type ClientMessage struct {
	Type    string `json:"t"`
	Player  int    `json:"p,omitempty"`
	Dir     string `json:"d,omitempty"`
	Cols    int    `json:"c,omitempty"`
	Rows    int    `json:"r,omitempty"`
	Players int    `json:"n,omitempty"`
}

// Event converts a ready/turn/quit message to an engine event.
func (m ClientMessage) Event() (engine.Event, bool) {
	switch m.Type {
	case MsgReady:
		return engine.Ready(m.Player), true
	case MsgTurn:
		d, ok := engine.ParseDirection(m.Dir)
		if !ok {
			return engine.Event{}, false
		}
		return engine.Turn(m.Player, d), true
	case MsgQuit:
		return engine.Quit(), true
	}
	return engine.Event{}, false
}

// WelcomeMsg is sent once the session is created.
type WelcomeMsg struct {
	Type    string `json:"t" msgpack:"t"`
	ID      string `json:"i" msgpack:"i"`
	Cols    int    `json:"c" msgpack:"c"`
	Rows    int    `json:"r" msgpack:"r"`
	Players int    `json:"n" msgpack:"n"`
}

// SnakeDTO is the compact snake for per-tick state updates.
type SnakeDTO struct {
	Player   int      `json:"p" msgpack:"p"`
	Color    string   `json:"c" msgpack:"c"`
	Segments [][2]int `json:"s" msgpack:"s"`
}

// OutcomeDTO describes a finished round.
// r = result (tie/win/loss), w = winner or -1, l = losing players,
// x = shared head cell on a head-on tie
type OutcomeDTO struct {
	Result string  `json:"r" msgpack:"r"`
	Winner int     `json:"w" msgpack:"w"`
	Losers []int   `json:"l" msgpack:"l"`
	HeadOn *[2]int `json:"x,omitempty" msgpack:"x,omitempty"`
}

// StateMsg is the per-tick frame.
type StateMsg struct {
	Type      string      `json:"t" msgpack:"t"`
	Round     int         `json:"k" msgpack:"k"`
	Phase     string      `json:"h" msgpack:"h"`
	Countdown int         `json:"cd,omitempty" msgpack:"cd,omitempty"`
	Ready     []bool      `json:"y" msgpack:"y"`
	Snakes    []SnakeDTO  `json:"s" msgpack:"s"`
	Food      *[2]int     `json:"f,omitempty" msgpack:"f,omitempty"`
	Scores    []int       `json:"p" msgpack:"p"`
	Outcome   *OutcomeDTO `json:"o,omitempty" msgpack:"o,omitempty"`
}

// ErrorMsg reports a rejected request.
type ErrorMsg struct {
	Type    string `json:"t" msgpack:"t"`
	Message string `json:"m" msgpack:"m"`
}

func pair(c engine.Cell) [2]int {
	return [2]int{c.Col, c.Row}
}

// NewStateMsg converts a snapshot to its wire form.
func NewStateMsg(snap engine.Snapshot) StateMsg {
	snakes := make([]SnakeDTO, len(snap.Snakes))
	for i, s := range snap.Snakes {
		segs := make([][2]int, len(s.Segments))
		for j, c := range s.Segments {
			segs[j] = pair(c)
		}
		snakes[i] = SnakeDTO{Player: s.Player, Color: s.Color, Segments: segs}
	}

	msg := StateMsg{
		Type:   MsgState,
		Round:  snap.Round,
		Phase:  snap.Phase.String(),
		Ready:  snap.Ready,
		Snakes: snakes,
		Scores: snap.Scores,
	}
	if snap.Phase == engine.Countdown {
		msg.Countdown = snap.Countdown
	}
	if snap.HasFood {
		f := pair(snap.Food)
		msg.Food = &f
	}
	if snap.Phase == engine.RoundOver {
		out := &OutcomeDTO{
			Result: snap.Outcome.Result.String(),
			Winner: snap.Outcome.Winner,
			Losers: make([]int, len(snap.Outcome.Losers)),
		}
		for i, l := range snap.Outcome.Losers {
			out.Losers[i] = l.Player
		}
		if snap.Outcome.HeadOn {
			at := pair(snap.Outcome.At)
			out.HeadOn = &at
		}
		msg.Outcome = out
	}
	return msg
}

// Codec selects how outgoing frames are encoded.
type Codec int

const (
	CodecJSON Codec = iota
	CodecMsgpack
)

// ParseCodec maps the ?codec= query value; anything unknown is JSON.
func ParseCodec(v string) Codec {
	if v == "msgpack" {
		return CodecMsgpack
	}
	return CodecJSON
}

// Encode returns the websocket frame type and payload for msg.
func (c Codec) Encode(msg interface{}) (int, []byte, error) {
	if c == CodecMsgpack {
		data, err := msgpack.Marshal(msg)
		return websocket.BinaryMessage, data, err
	}
	data, err := json.Marshal(msg)
	return websocket.TextMessage, data, err
}

package engine

// EventKind identifies an input event.
type EventKind int

const (
	ReadySignal EventKind = iota
	TurnRequest
	QuitSignal
)

// Event is a discrete input from the input collaborator.
type Event struct {
	Kind   EventKind
	Player int
	Dir    Direction // TurnRequest only
}

// Ready builds a ReadySignal for player.
func Ready(player int) Event {
	return Event{Kind: ReadySignal, Player: player}
}

// Turn builds a TurnRequest for player.
func Turn(player int, d Direction) Event {
	return Event{Kind: TurnRequest, Player: player, Dir: d}
}

// Quit builds a QuitSignal.
func Quit() Event {
	return Event{Kind: QuitSignal}
}

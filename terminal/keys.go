package main

import (
	"github.com/nsf/termbox-go"

	"gridsnake/engine"
)

// keyEvents maps one key press to engine events. Player 1 steers with WASD
// and readies with d; player 2 steers with the arrows and readies with the
// right arrow. Keys for a player beyond the session's count are ignored.
func keyEvents(ev termbox.Event, players int) []engine.Event {
	if ev.Type != termbox.EventKey {
		return nil
	}
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return []engine.Event{engine.Quit()}
	case termbox.KeyArrowRight:
		return forPlayer(1, players, engine.Ready(1), engine.Turn(1, engine.Right))
	case termbox.KeyArrowLeft:
		return forPlayer(1, players, engine.Turn(1, engine.Left))
	case termbox.KeyArrowUp:
		return forPlayer(1, players, engine.Turn(1, engine.Up))
	case termbox.KeyArrowDown:
		return forPlayer(1, players, engine.Turn(1, engine.Down))
	}

	switch ev.Ch {
	case 'q', 'Q':
		return []engine.Event{engine.Quit()}
	case 'd', 'D':
		return []engine.Event{engine.Ready(0), engine.Turn(0, engine.Right)}
	case 'a', 'A':
		return []engine.Event{engine.Turn(0, engine.Left)}
	case 'w', 'W':
		return []engine.Event{engine.Turn(0, engine.Up)}
	case 's', 'S':
		return []engine.Event{engine.Turn(0, engine.Down)}
	}
	return nil
}

func forPlayer(p, players int, evs ...engine.Event) []engine.Event {
	if p >= players {
		return nil
	}
	return evs
}

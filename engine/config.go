package engine

import (
	"errors"
	"fmt"
	"time"
)

// Game configuration constants
const (
	// Grid limits accepted from the settings collaborator
	MinCols     = 12
	MaxCols     = 50
	MinRows     = 10
	MaxRows     = 30
	DefaultCols = 17
	DefaultRows = 15

	// Snake
	InitialLength = 3
	StartCol      = 4 // head column for every snake at round start

	// Round
	CountdownSteps = 3

	// Cadence
	TickRate         = 5  // playing ticks per second
	ReadyPollRate    = 60 // polls per second while waiting for players
	CountdownStepMS  = 750
	RoundOverDelayMS = 2500

	// Food
	maxSpawnAttempts = 4 // rejection-sampling attempts per grid cell before scanning
)

// Player colors palette, indexed by player
var PlayerColors = []string{
	"#0064ff", // blue
	"#00a000", // green
}

// PlayerNames mirrors PlayerColors for banners and logs
var PlayerNames = []string{"BLUE", "GREEN"}

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is fixed for the lifetime of a session.
type Config struct {
	Cols    int
	Rows    int
	Players int
}

// DefaultConfig returns the 17x15 single-player setup.
func DefaultConfig() Config {
	return Config{Cols: DefaultCols, Rows: DefaultRows, Players: 1}
}

// Validate checks the ranges the settings dialog allows.
func (c Config) Validate() error {
	if c.Cols < MinCols || c.Cols > MaxCols {
		return fmt.Errorf("%w: cols %d not in [%d,%d]", ErrInvalidConfig, c.Cols, MinCols, MaxCols)
	}
	if c.Rows < MinRows || c.Rows > MaxRows {
		return fmt.Errorf("%w: rows %d not in [%d,%d]", ErrInvalidConfig, c.Rows, MinRows, MaxRows)
	}
	if c.Players != 1 && c.Players != 2 {
		return fmt.Errorf("%w: players %d not 1 or 2", ErrInvalidConfig, c.Players)
	}
	return nil
}

// Grid returns the board described by the config.
func (c Config) Grid() Grid {
	return Grid{Cols: c.Cols, Rows: c.Rows}
}

// Interval returns how long the clock waits before the next tick in phase p.
func Interval(p Phase) time.Duration {
	switch p {
	case Countdown:
		return CountdownStepMS * time.Millisecond
	case Playing:
		return time.Second / TickRate
	case RoundOver:
		return RoundOverDelayMS * time.Millisecond
	default:
		return time.Second / ReadyPollRate
	}
}

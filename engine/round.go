package engine

import (
	"sort"

	"github.com/google/uuid"
)

// Phase is the round state machine position.
type Phase int

const (
	AwaitingReady Phase = iota
	Countdown
	Playing
	RoundOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingReady:
		return "ready"
	case Countdown:
		return "countdown"
	case Playing:
		return "playing"
	case RoundOver:
		return "over"
	default:
		return "unknown"
	}
}

// Result is how a finished round ended.
type Result int

const (
	Undecided Result = iota
	Tie
	Win
	Loss
)

func (r Result) String() string {
	switch r {
	case Tie:
		return "tie"
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "undecided"
	}
}

// Loser is a snake that died on the final tick and why.
type Loser struct {
	Player int
	Cause  Collision
}

// Outcome describes a finished round.
type Outcome struct {
	Result Result
	Winner int // -1 unless Result == Win
	Losers []Loser
	HeadOn bool // tie with both heads on the same cell
	At     Cell // shared head cell when HeadOn
}

// TickReport summarizes what one tick changed.
type TickReport struct {
	Ate   []int // players that grew this tick
	Ended bool  // the round entered RoundOver on this tick
}

// Round owns the snakes and the food for one playthrough.
type Round struct {
	ID        string
	cfg       Config
	grid      Grid
	snakes    []*Snake // exactly cfg.Players entries, index = player
	food      Cell
	hasFood   bool
	ready     []bool
	countdown int
	phase     Phase
	ticks     int
	outcome   Outcome
	occ       *Occupancy
	spawner   *FoodSpawner
}

// NewRound creates a round waiting for its players, with fresh snakes and the
// food on its initial cell.
func NewRound(cfg Config, spawner *FoodSpawner) *Round {
	g := cfg.Grid()
	snakes := make([]*Snake, cfg.Players)
	for i, head := range StartCells(cfg) {
		snakes[i] = NewSnake(i, head, PlayerColors[i])
	}
	return &Round{
		ID:      uuid.New().String(),
		cfg:     cfg,
		grid:    g,
		snakes:  snakes,
		food:    InitialFood(g),
		hasFood: true,
		ready:   make([]bool, cfg.Players),
		phase:   AwaitingReady,
		outcome: Outcome{Winner: -1},
		occ:     NewOccupancy(),
		spawner: spawner,
	}
}

// StartCells returns the head cell of each player's snake at round start.
func StartCells(cfg Config) []Cell {
	mid := cfg.Rows / 2
	if cfg.Players == 1 {
		return []Cell{{Col: StartCol, Row: mid}}
	}
	return []Cell{
		{Col: StartCol, Row: mid - 1},
		{Col: StartCol, Row: mid + 1},
	}
}

// Phase returns the current state.
func (r *Round) Phase() Phase {
	return r.phase
}

// Snakes returns the round's snakes, index = player.
func (r *Round) Snakes() []*Snake {
	return r.snakes
}

// Food returns the food cell; ok is false once the board has no free cell.
func (r *Round) Food() (Cell, bool) {
	return r.food, r.hasFood
}

// Outcome returns the result of a finished round.
func (r *Round) Outcome() Outcome {
	return r.outcome
}

// Countdown returns the remaining countdown steps.
func (r *Round) Countdown() int {
	return r.countdown
}

// Ready reports whether player has signalled ready.
func (r *Round) Ready(player int) bool {
	return r.hasPlayer(player) && r.ready[player]
}

// Ticks returns how many playing ticks have run.
func (r *Round) Ticks() int {
	return r.ticks
}

func (r *Round) hasPlayer(p int) bool {
	return p >= 0 && p < len(r.snakes)
}

// Tick advances the round by one clock tick, consuming the events received
// since the previous tick in arrival order.
func (r *Round) Tick(events []Event) TickReport {
	switch r.phase {
	case AwaitingReady:
		r.collectReady(events)
	case Countdown:
		r.countdown--
		if r.countdown <= 0 {
			for _, s := range r.snakes {
				s.Launch(Right)
			}
			r.phase = Playing
		}
	case Playing:
		return r.play(events)
	}
	return TickReport{}
}

func (r *Round) collectReady(events []Event) {
	for _, ev := range events {
		if ev.Kind == ReadySignal && r.hasPlayer(ev.Player) {
			r.ready[ev.Player] = true
		}
	}
	for _, ok := range r.ready {
		if !ok {
			return
		}
	}
	r.phase = Countdown
	r.countdown = CountdownSteps
}

// play executes one playing tick:
//  1. apply turn requests
//  2. move every snake
//  3. self and boundary collisions
//  4. cross collisions over all ordered pairs
//  5. food
//  6. outcome
func (r *Round) play(events []Event) TickReport {
	r.ticks++
	var report TickReport

	for _, ev := range events {
		if ev.Kind == TurnRequest && r.hasPlayer(ev.Player) {
			r.snakes[ev.Player].QueueTurn(ev.Dir)
		}
	}

	// A snake's Advance reads only its own body, so moving them one after
	// another is the same as moving them all from the pre-tick positions.
	for _, s := range r.snakes {
		s.Advance()
	}

	causes := make(map[int]Collision)
	for _, s := range r.snakes {
		if c := s.Collision(r.grid); c != NoCollision {
			causes[s.Player] = c
		}
	}
	for _, pair := range r.pairs() {
		a, b := pair[0], pair[1]
		if _, lost := causes[a.Player]; lost {
			continue
		}
		if b.Occupies(a.Head()) {
			causes[a.Player] = CrossCollision
		}
	}

	for _, s := range r.snakes {
		if r.hasFood && s.TryConsumeFood(r.food) {
			report.Ate = append(report.Ate, s.Player)
			r.respawnFood()
		}
	}

	if len(causes) > 0 {
		r.finish(causes)
		report.Ended = true
	}
	return report
}

// pairs returns every ordered pair of distinct snakes; empty for one player.
func (r *Round) pairs() [][2]*Snake {
	var out [][2]*Snake
	for _, a := range r.snakes {
		for _, b := range r.snakes {
			if a != b {
				out = append(out, [2]*Snake{a, b})
			}
		}
	}
	return out
}

func (r *Round) respawnFood() {
	r.occ.Rebuild(r.snakes)
	r.food, r.hasFood = r.spawner.Spawn(r.occ)
}

func (r *Round) finish(causes map[int]Collision) {
	losers := make([]Loser, 0, len(causes))
	for p, c := range causes {
		losers = append(losers, Loser{Player: p, Cause: c})
	}
	sort.Slice(losers, func(i, j int) bool {
		return losers[i].Player < losers[j].Player
	})

	out := Outcome{Winner: -1, Losers: losers}
	switch {
	case len(losers) == 2:
		out.Result = Tie
		r.occ.Rebuild(r.snakes)
		if heads := r.occ.HeadsAt(r.snakes[0].Head()); len(heads) == 2 {
			out.HeadOn = true
			out.At = r.snakes[0].Head()
		}
	case len(r.snakes) == 2:
		out.Result = Win
		out.Winner = 1 - losers[0].Player
	default:
		out.Result = Loss
	}
	r.outcome = out
	r.phase = RoundOver
}

package engine

// SnakeView is the render-side copy of a snake.
type SnakeView struct {
	Player   int
	Color    string
	Segments []Cell // head first
}

// Snapshot is everything a renderer needs to paint one frame. It shares no
// memory with the engine.
type Snapshot struct {
	SessionID string
	RoundID   string
	Round     int
	Grid      Grid
	Phase     Phase
	Countdown int
	Ready     []bool
	Snakes    []SnakeView
	Food      Cell
	HasFood   bool
	Scores    []int
	Outcome   Outcome
}

// Snapshot returns a read-only view of the current round and scores.
func (s *Session) Snapshot() Snapshot {
	r := s.round
	snakes := make([]SnakeView, len(r.snakes))
	for i, sn := range r.snakes {
		snakes[i] = SnakeView{Player: sn.Player, Color: sn.Color, Segments: sn.Segments()}
	}
	ready := make([]bool, len(r.ready))
	copy(ready, r.ready)

	out := r.outcome
	out.Losers = append([]Loser(nil), r.outcome.Losers...)

	return Snapshot{
		SessionID: s.ID,
		RoundID:   r.ID,
		Round:     s.rounds,
		Grid:      r.grid,
		Phase:     r.phase,
		Countdown: r.countdown,
		Ready:     ready,
		Snakes:    snakes,
		Food:      r.food,
		HasFood:   r.hasFood,
		Scores:    s.Scores(),
		Outcome:   out,
	}
}

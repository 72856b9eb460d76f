package engine

// Collision classifies why a snake's head is where it must not be.
type Collision int

const (
	NoCollision Collision = iota
	OutOfBounds
	SelfCollision
	CrossCollision
)

func (c Collision) String() string {
	switch c {
	case OutOfBounds:
		return "boundary"
	case SelfCollision:
		return "self"
	case CrossCollision:
		return "cross"
	default:
		return "none"
	}
}

// Snake represents one player's snake for a single round.
//
// Direction changes are bound to cells, not to segments: a turn queued at the
// head's cell is replayed by every segment that later passes through that
// cell, so one map serves a body of any length.
type Snake struct {
	Player   int
	Color    string
	segments []Cell     // index 0 = head
	velocity []Velocity // parallel to segments
	turns    map[Cell]Direction
}

// NewSnake creates a stationary snake of InitialLength segments with its head
// at head and the body trailing to the left.
func NewSnake(player int, head Cell, color string) *Snake {
	segments := make([]Cell, InitialLength)
	for i := range segments {
		segments[i] = Cell{Col: head.Col - i, Row: head.Row}
	}
	return &Snake{
		Player:   player,
		Color:    color,
		segments: segments,
		velocity: make([]Velocity, InitialLength),
		turns:    make(map[Cell]Direction),
	}
}

// Head returns the head cell.
func (s *Snake) Head() Cell {
	return s.segments[0]
}

// Tail returns the last segment's cell.
func (s *Snake) Tail() Cell {
	return s.segments[len(s.segments)-1]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Heading returns the head's current velocity.
func (s *Snake) Heading() Velocity {
	return s.velocity[0]
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []Cell {
	out := make([]Cell, len(s.segments))
	copy(out, s.segments)
	return out
}

// Velocities returns a copy of the per-segment velocities.
func (s *Snake) Velocities() []Velocity {
	out := make([]Velocity, len(s.velocity))
	copy(out, s.velocity)
	return out
}

// PendingTurns returns a copy of the cell-bound turn queue.
func (s *Snake) PendingTurns() map[Cell]Direction {
	out := make(map[Cell]Direction, len(s.turns))
	for c, d := range s.turns {
		out[c] = d
	}
	return out
}

// Occupies reports whether any segment (head included) is on c.
func (s *Snake) Occupies(c Cell) bool {
	for _, seg := range s.segments {
		if seg == c {
			return true
		}
	}
	return false
}

// Launch gives every segment heading d and queues d at the head so the first
// Advance keeps the head on it.
func (s *Snake) Launch(d Direction) {
	v := d.Velocity()
	for i := range s.velocity {
		s.velocity[i] = v
	}
	s.turns[s.Head()] = d
}

// QueueTurn schedules d at the head's current cell. Only 90° turns are
// accepted: a request on the axis the head already moves along (reversal or
// no-op) returns false and changes nothing. A newer request at the same head
// cell replaces an unconsumed older one.
func (s *Snake) QueueTurn(d Direction) bool {
	h := s.Heading()
	if d.Horizontal() && h.DX != 0 {
		return false
	}
	if !d.Horizontal() && h.DY != 0 {
		return false
	}
	s.turns[s.Head()] = d
	return true
}

// Advance moves every segment one step.
//
// Segments are processed tail to head and each new cell is written back
// immediately, so a segment entering a turn cell this tick turns on the next
// one, exactly one tick after the segment ahead of it.
func (s *Snake) Advance() {
	for i := len(s.segments) - 1; i >= 0; i-- {
		if d, ok := s.turns[s.segments[i]]; ok {
			s.velocity[i] = d.Velocity()
		}
		s.segments[i] = s.segments[i].Add(s.velocity[i])
	}
	s.purgeTurns()
}

// purgeTurns drops turns whose cell no longer holds any segment.
func (s *Snake) purgeTurns() {
	for c := range s.turns {
		if !s.Occupies(c) {
			delete(s.turns, c)
		}
	}
}

// Collision reports whether the head left the grid or hit the body.
func (s *Snake) Collision(g Grid) Collision {
	head := s.Head()
	if !g.InBounds(head) {
		return OutOfBounds
	}
	for _, seg := range s.segments[1:] {
		if seg == head {
			return SelfCollision
		}
	}
	return NoCollision
}

// IsColliding is the terminal-loss predicate evaluated after Advance.
func (s *Snake) IsColliding(g Grid) bool {
	return s.Collision(g) != NoCollision
}

// TryConsumeFood grows the snake by one segment if its head is on food. The
// new tail is placed one cell behind the old tail along the tail's heading
// and inherits that heading.
func (s *Snake) TryConsumeFood(food Cell) bool {
	if s.Head() != food {
		return false
	}
	last := len(s.segments) - 1
	tv := s.velocity[last]
	s.segments = append(s.segments, s.segments[last].Sub(tv))
	s.velocity = append(s.velocity, tv)
	return true
}

package engine

// Velocity is a per-segment step in cells per tick. The zero value means
// stationary (before the round starts).
type Velocity struct {
	DX int
	DY int
}

// Direction is one of the four grid headings.
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

// Directions lists every heading in declaration order.
var Directions = [...]Direction{Right, Left, Up, Down}

var directionVelocity = [...]Velocity{
	Right: {DX: 1, DY: 0},
	Left:  {DX: -1, DY: 0},
	Up:    {DX: 0, DY: -1},
	Down:  {DX: 0, DY: 1},
}

// Wire tags, single-char to match the compact protocol
var directionTag = [...]string{
	Right: "r",
	Left:  "l",
	Up:    "u",
	Down:  "d",
}

// Velocity returns the unit vector for d.
func (d Direction) Velocity() Velocity {
	return directionVelocity[d]
}

// Horizontal reports whether d moves along the column axis.
func (d Direction) Horizontal() bool {
	return d == Right || d == Left
}

func (d Direction) String() string {
	if int(d) >= len(directionTag) {
		return "?"
	}
	return directionTag[d]
}

// ParseDirection converts a wire tag ("r", "l", "u", "d") to a Direction.
func ParseDirection(tag string) (Direction, bool) {
	for _, d := range Directions {
		if directionTag[d] == tag {
			return d, true
		}
	}
	return 0, false
}

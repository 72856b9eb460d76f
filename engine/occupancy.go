package engine

// occupant records one snake segment sitting on a cell
type occupant struct {
	player int
	segIdx int
}

// Occupancy is a cell hash of snake segments for one tick's positions.
// Rebuilt after movement, before collision and food checks.
type Occupancy struct {
	cells map[Cell][]occupant
}

// NewOccupancy creates an empty index
func NewOccupancy() *Occupancy {
	return &Occupancy{cells: make(map[Cell][]occupant)}
}

// Clear resets all cells
func (o *Occupancy) Clear() {
	o.cells = make(map[Cell][]occupant)
}

// InsertSnake adds every segment of s, head included
func (o *Occupancy) InsertSnake(s *Snake) {
	for i, seg := range s.segments {
		o.cells[seg] = append(o.cells[seg], occupant{player: s.Player, segIdx: i})
	}
}

// Rebuild clears the index and inserts all snakes
func (o *Occupancy) Rebuild(snakes []*Snake) {
	o.Clear()
	for _, s := range snakes {
		o.InsertSnake(s)
	}
}

// Occupied reports whether any segment of any snake is on c
func (o *Occupancy) Occupied(c Cell) bool {
	return len(o.cells[c]) > 0
}

// HeadsAt returns the players whose head is on c
func (o *Occupancy) HeadsAt(c Cell) []int {
	var players []int
	for _, e := range o.cells[c] {
		if e.segIdx == 0 {
			players = append(players, e.player)
		}
	}
	return players
}

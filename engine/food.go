package engine

import (
	"golang.org/x/exp/rand"
)

// InitialFood is where the food sits at the start of every round.
func InitialFood(g Grid) Cell {
	return Cell{Col: 3 * g.Cols / 4, Row: g.Rows / 2}
}

// FoodSpawner picks uniformly random free cells for the food.
type FoodSpawner struct {
	grid Grid
	rng  *rand.Rand
}

// NewFoodSpawner creates a spawner over g drawing from rng.
func NewFoodSpawner(g Grid, rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{grid: g, rng: rng}
}

// Spawn returns a cell not covered by occ. Rejection sampling is tried first;
// when the board is so full that sampling keeps missing, the free cells are
// enumerated and one is picked uniformly. ok is false only when every cell is
// occupied.
func (fs *FoodSpawner) Spawn(occ *Occupancy) (Cell, bool) {
	size := fs.grid.Size()
	for i := 0; i < size*maxSpawnAttempts; i++ {
		c := Cell{Col: fs.rng.Intn(fs.grid.Cols), Row: fs.rng.Intn(fs.grid.Rows)}
		if !occ.Occupied(c) {
			return c, true
		}
	}

	free := make([]Cell, 0, size)
	for i := 0; i < size; i++ {
		c := fs.grid.CellAt(i)
		if !occ.Occupied(c) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[fs.rng.Intn(len(free))], true
}

package engine

import "fmt"

// Cell is a discrete (column, row) grid coordinate.
type Cell struct {
	Col int
	Row int
}

// Add returns the cell reached by moving v from c.
func (c Cell) Add(v Velocity) Cell {
	return Cell{Col: c.Col + v.DX, Row: c.Row + v.DY}
}

// Sub returns the cell one step behind c along v.
func (c Cell) Sub(v Velocity) Cell {
	return Cell{Col: c.Col - v.DX, Row: c.Row - v.DY}
}

// Adjacent reports whether c and o share an edge.
func (c Cell) Adjacent(o Cell) bool {
	return abs(c.Col-o.Col)+abs(c.Row-o.Row) == 1
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Grid is the board size. Boundary is death (no wrap).
type Grid struct {
	Cols int
	Rows int
}

// InBounds reports whether c lies on the board.
func (g Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

// Size returns the number of cells on the board.
func (g Grid) Size() int {
	return g.Cols * g.Rows
}

// CellAt maps a linear index in [0, Size) to a cell, row-major.
func (g Grid) CellAt(i int) Cell {
	return Cell{Col: i % g.Cols, Row: i / g.Cols}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

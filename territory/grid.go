package territory

import (
	"fmt"
)

// NewGrid builds a Grid from a non-empty rectangular matrix of terrain codes
// and the table that prices each code.
//
// Cell (col+1, row+1) receives costs[matrix[row][col]], so X tracks the matrix
// column and Y tracks the matrix row.
//
// Validation order:
//  1. matrix has at least one row and one column (ErrEmptyGrid);
//  2. all rows share the first row's length (ErrNonRectangular);
//  3. every code has a table entry (ErrMissingCostCode);
//  4. every used entry is ≥ 0 (ErrNegativeCost).
//
// On error no Grid is returned. The matrix is not retained.
// Complexity: O(W×H) time and memory.
func NewGrid(matrix [][]int, costs CostTable) (*Grid, error) {
	// 1) Shape checks
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(matrix), len(matrix[0])
	for _, row := range matrix {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}

	// 2) Price every position; fail on the first unknown or negative code
	cells := make([]Cell, 0, w*h)
	var row, col int
	for row = 0; row < h; row++ {
		for col = 0; col < w; col++ {
			code := matrix[row][col]
			cost, ok := costs[code]
			if !ok {
				return nil, fmt.Errorf("%w: code %d at (%d, %d)", ErrMissingCostCode, code, col+1, row+1)
			}
			if cost < 0 {
				return nil, fmt.Errorf("%w: code %d costs %g", ErrNegativeCost, code, cost)
			}
			cells = append(cells, Cell{Coord: Coord{X: col + 1, Y: row + 1}, Cost: cost})
		}
	}

	return &Grid{width: w, height: h, cells: cells}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Dimensions returns (width, height).
func (g *Grid) Dimensions() (width, height int) {
	return g.width, g.height
}

// Size returns the number of cells, Width×Height.
func (g *Grid) Size() int { return len(g.cells) }

// Contains reports whether c lies within [1,Width]×[1,Height].
// Complexity: O(1).
func (g *Grid) Contains(c Coord) bool {
	return c.X >= 1 && c.X <= g.width && c.Y >= 1 && c.Y <= g.height
}

// CheckMembership returns ErrOutOfBounds if c is outside the grid.
func (g *Grid) CheckMembership(c Coord) error {
	if !g.Contains(c) {
		return fmt.Errorf("%w: %s not in %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}

	return nil
}

// CheckAllMembership checks every coordinate in order and returns the
// error for the first one outside the grid.
func (g *Grid) CheckAllMembership(cs []Coord) error {
	for _, c := range cs {
		if err := g.CheckMembership(c); err != nil {
			return err
		}
	}

	return nil
}

// Index maps an in-bounds coordinate to its row-major index.
// The result is undefined for coordinates outside the grid.
func (g *Grid) Index(c Coord) int {
	return (c.Y-1)*g.width + (c.X - 1)
}

// CoordAt converts a row-major index back to its coordinate.
func (g *Grid) CoordAt(idx int) Coord {
	return Coord{X: idx%g.width + 1, Y: idx/g.width + 1}
}

// At returns the cell at (x, y) and whether it exists.
func (g *Grid) At(x, y int) (Cell, bool) {
	c := Coord{X: x, Y: y}
	if !g.Contains(c) {
		return Cell{}, false
	}

	return g.cells[g.Index(c)], true
}

// Cell returns the cell at c. It panics if c is outside the grid;
// use At or CheckMembership for unchecked input.
func (g *Grid) Cell(c Coord) Cell {
	if !g.Contains(c) {
		panic(fmt.Sprintf("territory: Cell%s outside %dx%d grid", c, g.width, g.height))
	}

	return g.cells[g.Index(c)]
}

// Neighbors returns the in-bounds cardinal neighbors of c in the order
// east, west, south, north. A corner yields 2 cells, an edge 3, an
// interior cell 4. Coordinates outside the grid yield only those
// neighbors that happen to fall inside it.
func (g *Grid) Neighbors(c Coord) []Cell {
	out := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Coord{X: c.X + d[0], Y: c.Y + d[1]}
		if !g.Contains(n) {
			continue
		}
		out = append(out, g.cells[g.Index(n)])
	}

	return out
}

// Cells returns a copy of all cells in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)

	return out
}

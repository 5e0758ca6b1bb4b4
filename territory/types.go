package territory

import (
	"errors"
	"fmt"
)

// Sentinel errors for territory construction and membership checks.
var (
	// ErrInvalidCoordinate indicates a coordinate with X < 1 or Y < 1.
	ErrInvalidCoordinate = errors.New("territory: coordinates must be positive")
	// ErrOutOfBounds indicates a coordinate outside the grid extent.
	ErrOutOfBounds = errors.New("territory: coordinate outside grid bounds")
	// ErrEmptyGrid indicates the input matrix has no rows or no columns.
	ErrEmptyGrid = errors.New("territory: matrix must have at least one row and one column")
	// ErrNonRectangular indicates matrix rows of differing lengths.
	ErrNonRectangular = errors.New("territory: all matrix rows must have the same length")
	// ErrMissingCostCode indicates a terrain code absent from the cost table.
	ErrMissingCostCode = errors.New("territory: terrain code missing from cost table")
	// ErrNegativeCost indicates a terrain code mapped to a negative cost.
	ErrNegativeCost = errors.New("territory: terrain cost must be non-negative")
)

// Coord is the identity of a cell: a 1-based (X, Y) pair.
// It is comparable and therefore usable as a map or set key.
type Coord struct {
	X, Y int
}

// NewCoord returns the coordinate (x, y), or ErrInvalidCoordinate
// if either component is < 1.
func NewCoord(x, y int) (Coord, error) {
	if x < 1 || y < 1 {
		return Coord{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidCoordinate, x, y)
	}

	return Coord{X: x, Y: y}, nil
}

// Valid reports whether both components are positive.
func (c Coord) Valid() bool {
	return c.X >= 1 && c.Y >= 1
}

// String formats the coordinate as "(x, y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Cell is one position of the territory: its coordinate plus the
// intrinsic cost of entering it. Cells are immutable values.
type Cell struct {
	Coord
	Cost float64 // traversal cost k, looked up from the CostTable
}

// NewCell returns the cell (x, y) with the given entry cost.
// Fails with ErrInvalidCoordinate if x < 1 or y < 1.
func NewCell(x, y int, cost float64) (Cell, error) {
	c, err := NewCoord(x, y)
	if err != nil {
		return Cell{}, err
	}

	return Cell{Coord: c, Cost: cost}, nil
}

// Coordinates returns the (x, y) pair of the cell.
func (c Cell) Coordinates() (x, y int) {
	return c.X, c.Y
}

// IntrinsicCost returns the cost of entering the cell.
func (c Cell) IntrinsicCost() float64 {
	return c.Cost
}

// Equal reports whether both cells sit on the same coordinate.
// Cost does not take part in identity.
func (c Cell) Equal(other Cell) bool {
	return c.Coord == other.Coord
}

// CostTable maps a terrain code to its traversal cost.
type CostTable map[int]float64

// Grid is an immutable W×H territory of Cells.
// cells is stored row-major: cells[(y-1)*width + (x-1)].
type Grid struct {
	width, height int
	cells         []Cell
}

// neighborOffsets fixes the enumeration order east, west, south, north.
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Package territory models a weighted 2-D terrain grid for least-cost path search.
//
// A territory is built from two inputs:
//
//   - a rectangular matrix of integer terrain codes, rows top to bottom;
//   - a CostTable mapping each terrain code to a non-negative traversal cost.
//
// Every matrix entry becomes a Cell. Coordinates are 1-based and follow the
// matrix orientation: X is the column (1..Width), Y is the row (1..Height).
//
//	matrix[row][col]  →  Cell{X: col+1, Y: row+1, Cost: costs[matrix[row][col]]}
//
// Cells are immutable values whose identity is their Coord. A Grid never
// changes after NewGrid returns, so one Grid may be shared by any number of
// concurrent searches; per-search bookkeeping lives with the search engine.
//
// Neighbor enumeration is 4-connected and deterministic: east, west, south,
// north. Search engines rely on that order for reproducible tie-breaking.
//
// Errors (sentinel):
//
//   - ErrInvalidCoordinate: X or Y is < 1.
//   - ErrOutOfBounds:       a coordinate lies outside [1,Width]×[1,Height].
//   - ErrEmptyGrid:         the matrix has no rows or no columns.
//   - ErrNonRectangular:    matrix rows differ in length.
//   - ErrMissingCostCode:   a terrain code has no CostTable entry.
//   - ErrNegativeCost:      a terrain code used by the matrix has a negative cost.
//
// Complexity: NewGrid is O(W×H) time and memory; every query is O(1).
package territory

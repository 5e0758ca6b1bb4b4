package astar

import (
	"github.com/katalvlaran/terrapath/territory"
)

// Record is the per-search bookkeeping of one cell.
//
// The path to a cell is not stored; it is the chain of Prev links back to
// the start. Len caches that chain's length (cells, both ends inclusive)
// so the path cost factor is O(1).
type Record struct {
	G       float64         // accumulated cost from the start
	F       float64         // G plus heuristic estimate
	Prev    territory.Coord // predecessor on the best path found so far
	HasPrev bool            // false for the start and for untouched cells
	Len     int             // number of cells on the path to this cell
	Open    bool            // currently in the open set
}

// Reset puts the record back to its pre-search state: g = f = 0 and a
// path consisting of the cell alone.
func (r *Record) Reset() {
	*r = Record{Len: 1}
}

// Scratch is an arena of Records, one per grid cell, indexed like the grid.
// A Scratch belongs to exactly one search; Search allocates a fresh one per
// call, which keeps the Grid itself immutable and shareable.
type Scratch struct {
	grid    *territory.Grid
	records []Record
}

// NewScratch allocates records for every cell of g, already reset.
func NewScratch(g *territory.Grid) *Scratch {
	s := &Scratch{grid: g, records: make([]Record, g.Size())}
	s.Reset()

	return s
}

// Reset clears the scratch state of every cell.
func (s *Scratch) Reset() {
	for i := range s.records {
		s.records[i].Reset()
	}
}

// Record returns a copy of the record for c.
func (s *Scratch) Record(c territory.Coord) Record {
	return s.records[s.grid.Index(c)]
}

// CostSoFar returns g for c.
func (s *Scratch) CostSoFar(c territory.Coord) float64 {
	return s.records[s.grid.Index(c)].G
}

// SetCostSoFar sets g for c.
func (s *Scratch) SetCostSoFar(c territory.Coord, g float64) {
	s.records[s.grid.Index(c)].G = g
}

// EstimatedTotal returns f for c.
func (s *Scratch) EstimatedTotal(c territory.Coord) float64 {
	return s.records[s.grid.Index(c)].F
}

// SetEstimatedTotal sets f for c.
func (s *Scratch) SetEstimatedTotal(c territory.Coord, f float64) {
	s.records[s.grid.Index(c)].F = f
}

// PathLen returns the number of cells on the recorded path to c.
func (s *Scratch) PathLen(c territory.Coord) int {
	return s.records[s.grid.Index(c)].Len
}

// PathTo rebuilds the recorded path to c in start-first order by walking
// predecessor links once and reversing.
func (s *Scratch) PathTo(c territory.Coord) []territory.Cell {
	path := make([]territory.Cell, 0, s.PathLen(c))
	for cur := c; ; {
		path = append(path, s.grid.Cell(cur))
		rec := s.records[s.grid.Index(cur)]
		if !rec.HasPrev {
			break
		}
		cur = rec.Prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// relax records from as the predecessor of c with the given g and f.
func (s *Scratch) relax(c, from territory.Coord, g, f float64) {
	rec := &s.records[s.grid.Index(c)]
	rec.G = g
	rec.F = f
	rec.Prev = from
	rec.HasPrev = true
	rec.Len = s.records[s.grid.Index(from)].Len + 1
}

func (s *Scratch) setOpen(c territory.Coord, open bool) {
	s.records[s.grid.Index(c)].Open = open
}

func (s *Scratch) isOpen(c territory.Coord) bool {
	return s.records[s.grid.Index(c)].Open
}

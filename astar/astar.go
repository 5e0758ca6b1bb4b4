// Package astar implements a best-first least-cost search over a territory.Grid
// from one start cell to the nearest of several goal cells.
//
// Step cost: entering neighbor N from the current cell costs N.Cost × factor,
// where factor = PathCostFactor(len(path to current)) grows by 10% for every
// five cells already walked.
//
// Complexity:
//
//   - SelectLinearScan:    O(V²) time, each pop scans the open set.
//   - SelectPriorityQueue: O((V + E) log V) time, lazy decrease-key.
//   - Space: O(V) for the scratch arena, closed set and frontier.
//
// Notes on implementation choices:
//
//   - All bookkeeping lives in a Scratch allocated per call; the Grid is only
//     read, so concurrent searches on one Grid are safe.
//   - Paths are parent-pointer chains reconstructed once at the goal.
//   - Closed cells are never re-opened, even if a cheaper route appears later.
//   - Re-relaxation of an open cell requires a strictly smaller g.
package astar

import (
	"fmt"
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/terrapath/territory"
)

// Search finds the least-cost path from start to the nearest reachable goal.
//
// Preconditions and validation (in order), all before any search state exists:
//  1. Options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGrid).
//  3. goals must be non-empty (ErrNoGoals).
//  4. start and every goal must lie in g (territory.ErrOutOfBounds).
//
// Returns:
//
//   - Result with Found=true and the start-first Path when a goal is reached.
//   - Result with Found=false and an empty Path when the open set empties;
//     this is a normal outcome, not an error.
//   - the context error if Options.Ctx is cancelled mid-run.
//   - ErrExpansionLimit if MaxExpansions is hit first.
func Search(g *territory.Grid, start territory.Coord, goals []territory.Coord, opts ...Option) (Result, error) {
	// 1) Build and validate options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return Result{}, cfg.err
	}

	// 2) Validate inputs
	if g == nil {
		return Result{}, ErrNilGrid
	}
	if len(goals) == 0 {
		return Result{}, ErrNoGoals
	}
	if err := g.CheckMembership(start); err != nil {
		return Result{}, fmt.Errorf("start: %w", err)
	}
	if err := g.CheckAllMembership(goals); err != nil {
		return Result{}, fmt.Errorf("goal: %w", err)
	}

	// 3) Fresh per-run state
	scratch := NewScratch(g)
	scratch.Reset()
	goalSet := mapset.New[territory.Coord]()
	for _, c := range goals {
		goalSet.Put(c)
	}

	r := &runner{
		grid:    g,
		options: cfg,
		goals:   goals,
		goalSet: goalSet,
		closed:  mapset.New[territory.Coord](),
		scratch: scratch,
		open:    newFrontier(cfg.Selection, scratch),
		log:     cfg.Logger.With(slog.String("selection", cfg.Selection.String())),
	}

	r.log.Debug("search started", slog.String("start", start.String()), slog.Int("goals", len(goals)))

	// 4) Run
	res, err := r.run(start)
	if err != nil {
		r.log.Debug("search aborted", slog.Any("err", err), slog.Int("expanded", r.expanded))
		return Result{}, err
	}
	if res.Found {
		r.log.Debug("solution found",
			slog.Int("steps", res.Steps),
			slog.Float64("cost", res.Cost),
			slog.Int("expanded", res.Expanded),
			slog.Int("relaxations", res.Relaxations))
	} else {
		r.log.Debug("no solution", slog.Int("expanded", res.Expanded))
	}

	return res, nil
}

// runner holds the mutable state for a single Search execution.
type runner struct {
	grid    *territory.Grid
	options Options
	goals   []territory.Coord
	goalSet mapset.Set[territory.Coord]
	closed  mapset.Set[territory.Coord]
	scratch *Scratch
	open    frontier
	log     *slog.Logger

	expanded    int
	relaxations int
}

// run is the main loop: pop the best open cell, stop at a goal, otherwise
// relax its neighbors.
func (r *runner) run(start territory.Coord) (Result, error) {
	ctx := r.options.Ctx

	// Seed the frontier; start keeps g = 0 and a one-cell path from Reset.
	f0 := Heuristic(start, r.goals)
	r.scratch.SetEstimatedTotal(start, f0)
	r.scratch.setOpen(start, true)
	r.open.push(start, f0)

	for r.open.len() > 0 {
		// a) Cooperative cancellation and expansion cap
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if r.options.MaxExpansions > 0 && r.expanded >= r.options.MaxExpansions {
			return Result{}, fmt.Errorf("%w: %d cells expanded", ErrExpansionLimit, r.expanded)
		}

		// b) Open → closed
		cur := r.open.popMin()
		r.scratch.setOpen(cur, false)
		r.closed.Put(cur)
		r.expanded++
		r.options.OnExpand(r.grid.Cell(cur), r.scratch.CostSoFar(cur), r.scratch.EstimatedTotal(cur))

		// c) Goal test
		if r.goalSet.Has(cur) {
			path := r.scratch.PathTo(cur)

			return Result{
				Path:        path,
				Cost:        r.scratch.CostSoFar(cur),
				Steps:       len(path) - 1,
				Found:       true,
				Expanded:    r.expanded,
				Relaxations: r.relaxations,
			}, nil
		}

		// d) Relax neighbors
		r.expand(cur)
	}

	return Result{
		Path:        []territory.Cell{},
		Expanded:    r.expanded,
		Relaxations: r.relaxations,
	}, nil
}

// expand relaxes every neighbor of cur.
// Assumes cur is closed and its g is final.
func (r *runner) expand(cur territory.Coord) {
	factor := PathCostFactor(r.scratch.PathLen(cur))
	g := r.scratch.CostSoFar(cur)

	for _, n := range r.grid.Neighbors(cur) {
		if r.closed.Has(n.Coord) {
			continue // never re-opened
		}
		tentativeG := g + n.Cost*factor
		tentativeF := Heuristic(n.Coord, r.goals) + tentativeG

		switch {
		case !r.scratch.isOpen(n.Coord):
			r.scratch.relax(n.Coord, cur, tentativeG, tentativeF)
			r.scratch.setOpen(n.Coord, true)
			r.open.push(n.Coord, tentativeF)
			r.relaxations++
		case tentativeG < r.scratch.CostSoFar(n.Coord):
			r.scratch.relax(n.Coord, cur, tentativeG, tentativeF)
			r.open.update(n.Coord, tentativeF)
			r.relaxations++
		}
	}
}

package astar_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/terrapath/astar"
	"github.com/katalvlaran/terrapath/territory"
)

// ------------------------------------------------------------------------
// Helpers
// ------------------------------------------------------------------------

func mustGrid(t testing.TB, matrix [][]int, costs territory.CostTable) *territory.Grid {
	t.Helper()
	g, err := territory.NewGrid(matrix, costs)
	require.NoError(t, err)

	return g
}

func uniformGrid(t testing.TB, w, h int) *territory.Grid {
	m := make([][]int, h)
	for y := range m {
		m[y] = make([]int, w)
	}

	return mustGrid(t, m, territory.CostTable{0: 1})
}

func coords(path []territory.Cell) []territory.Coord {
	out := make([]territory.Coord, len(path))
	for i, c := range path {
		out[i] = c.Coord
	}

	return out
}

// replayCost recomputes a path's cost from its cells alone: entering
// path[i] costs k·PathCostFactor(i), i being the length of the prefix walked.
func replayCost(path []territory.Cell) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i].Cost * astar.PathCostFactor(i)
	}

	return total
}

// requireWellFormed checks start/goal endpoints and 4-adjacency of each step.
func requireWellFormed(t *testing.T, res astar.Result, start territory.Coord, goals []territory.Coord) {
	t.Helper()
	require.True(t, res.Found)
	require.NotEmpty(t, res.Path)
	require.Equal(t, start, res.Path[0].Coord)
	require.Contains(t, goals, res.Path[len(res.Path)-1].Coord)
	require.Equal(t, len(res.Path)-1, res.Steps)
	for i := 1; i < len(res.Path); i++ {
		a, b := res.Path[i-1].Coord, res.Path[i].Coord
		dx, dy := a.X-b.X, a.Y-b.Y
		require.Equal(t, 1, dx*dx+dy*dy, "step %s→%s is not cardinal", a, b)
	}
	require.InDelta(t, replayCost(res.Path), res.Cost, 1e-9)
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

type ValidationSuite struct {
	suite.Suite
	grid *territory.Grid
}

func (s *ValidationSuite) SetupTest() {
	s.grid = uniformGrid(s.T(), 3, 3)
}

func (s *ValidationSuite) TestNilGrid() {
	_, err := astar.Search(nil, territory.Coord{X: 1, Y: 1}, []territory.Coord{{X: 1, Y: 1}})
	require.ErrorIs(s.T(), err, astar.ErrNilGrid)
}

func (s *ValidationSuite) TestNoGoals() {
	_, err := astar.Search(s.grid, territory.Coord{X: 1, Y: 1}, nil)
	require.ErrorIs(s.T(), err, astar.ErrNoGoals)
}

func (s *ValidationSuite) TestStartOutOfBounds() {
	_, err := astar.Search(s.grid, territory.Coord{X: 4, Y: 1}, []territory.Coord{{X: 1, Y: 1}})
	require.ErrorIs(s.T(), err, territory.ErrOutOfBounds)
}

// TestGoalOutOfBounds_NoWork verifies the check happens before any expansion.
func (s *ValidationSuite) TestGoalOutOfBounds_NoWork() {
	calls := 0
	_, err := astar.Search(s.grid,
		territory.Coord{X: 1, Y: 1},
		[]territory.Coord{{X: 2, Y: 2}, {X: 3, Y: 7}},
		astar.WithOnExpand(func(territory.Cell, float64, float64) { calls++ }),
	)
	require.ErrorIs(s.T(), err, territory.ErrOutOfBounds)
	require.Zero(s.T(), calls)
}

func (s *ValidationSuite) TestOptionViolations() {
	start := territory.Coord{X: 1, Y: 1}
	goals := []territory.Coord{{X: 3, Y: 3}}

	_, err := astar.Search(s.grid, start, goals, astar.WithMaxExpansions(-1))
	require.ErrorIs(s.T(), err, astar.ErrOptionViolation)

	_, err = astar.Search(s.grid, start, goals, astar.WithSelection(astar.Selection(42)))
	require.ErrorIs(s.T(), err, astar.ErrOptionViolation)
}

func (s *ValidationSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := astar.Search(s.grid, territory.Coord{X: 1, Y: 1}, []territory.Coord{{X: 3, Y: 3}}, astar.WithContext(ctx))
	require.True(s.T(), errors.Is(err, context.Canceled), "got %v", err)
}

func (s *ValidationSuite) TestExpansionLimit() {
	start := territory.Coord{X: 1, Y: 1}
	goals := []territory.Coord{{X: 3, Y: 3}}

	_, err := astar.Search(s.grid, start, goals, astar.WithMaxExpansions(2))
	require.ErrorIs(s.T(), err, astar.ErrExpansionLimit)

	// The 3×3 search closes all nine cells before popping the goal.
	res, err := astar.Search(s.grid, start, goals, astar.WithMaxExpansions(9))
	require.NoError(s.T(), err)
	require.True(s.T(), res.Found)
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

// ------------------------------------------------------------------------
// 2. Path cost factor and heuristic
// ------------------------------------------------------------------------

func TestPathCostFactor_Steps(t *testing.T) {
	cases := []struct {
		length int
		want   float64
	}{
		{0, 1}, {1, 1}, {5, 1},
		{6, 1.1}, {10, 1.1},
		{11, 1.21}, {15, 1.21},
		{16, 1.331},
	}
	for _, tc := range cases {
		require.InDelta(t, tc.want, astar.PathCostFactor(tc.length), 1e-12, "len %d", tc.length)
	}
}

func TestPathCostFactor_Monotone(t *testing.T) {
	prev := astar.PathCostFactor(0)
	for n := 1; n <= 100; n++ {
		f := astar.PathCostFactor(n)
		require.GreaterOrEqual(t, f, prev, "len %d", n)
		prev = f
	}
}

func TestDistance_Padded(t *testing.T) {
	a := territory.Coord{X: 1, Y: 1}
	require.InDelta(t, 1.4142135623730951, astar.Distance(a, a), 1e-12)
	require.InDelta(t, 5.0, astar.Distance(a, territory.Coord{X: 3, Y: 4}), 1e-12) // (2+1, 3+1) → 3-4-5
}

// TestHeuristic_RunningMinimumFromZero pins the reference reduction:
// no padded distance is below zero, so the estimate never leaves 0.
func TestHeuristic_RunningMinimumFromZero(t *testing.T) {
	c := territory.Coord{X: 2, Y: 2}
	goals := []territory.Coord{{X: 9, Y: 9}, {X: 2, Y: 3}, {X: 5, Y: 1}}
	require.Equal(t, 0.0, astar.Heuristic(c, goals))
	require.Equal(t, 0.0, astar.Heuristic(c, nil))
}

// ------------------------------------------------------------------------
// 3. Search behavior
// ------------------------------------------------------------------------

func TestSearch_StartIsGoal(t *testing.T) {
	g := uniformGrid(t, 4, 4)
	start := territory.Coord{X: 2, Y: 3}
	for _, sel := range []astar.Selection{astar.SelectLinearScan, astar.SelectPriorityQueue} {
		res, err := astar.Search(g, start, []territory.Coord{start}, astar.WithSelection(sel))
		require.NoError(t, err)
		require.True(t, res.Found)
		require.Equal(t, []territory.Coord{start}, coords(res.Path))
		require.Zero(t, res.Cost)
		require.Zero(t, res.Steps)
	}
}

func TestSearch_Uniform3x3(t *testing.T) {
	g := uniformGrid(t, 3, 3)
	start := territory.Coord{X: 1, Y: 1}
	goals := []territory.Coord{{X: 3, Y: 3}}

	for _, sel := range []astar.Selection{astar.SelectLinearScan, astar.SelectPriorityQueue} {
		t.Run(sel.String(), func(t *testing.T) {
			res, err := astar.Search(g, start, goals, astar.WithSelection(sel))
			require.NoError(t, err)
			requireWellFormed(t, res, start, goals)
			require.Equal(t, 4, res.Steps)
			require.InDelta(t, 4.0, res.Cost, 1e-12)

			// East-first enumeration walks the top row, then down the right edge.
			want := []territory.Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}}
			require.Equal(t, want, coords(res.Path))
			require.Equal(t, 9, res.Expanded)
			require.Equal(t, 8, res.Relaxations)
		})
	}
}

// TestSearch_CorridorFactor checks the 10% surcharge after five cells.
func TestSearch_CorridorFactor(t *testing.T) {
	g := uniformGrid(t, 8, 1)
	res, err := astar.Search(g, territory.Coord{X: 1, Y: 1}, []territory.Coord{{X: 8, Y: 1}})
	require.NoError(t, err)
	require.Equal(t, 7, res.Steps)
	// Five unit steps at ×1.0, then two at ×1.1.
	require.InDelta(t, 7.2, res.Cost, 1e-9)
}

func TestSearch_AvoidsExpensiveTerrain(t *testing.T) {
	matrix := [][]int{
		{1, 1, 1},
		{1, 9, 1},
		{1, 1, 1},
	}
	g := mustGrid(t, matrix, territory.CostTable{1: 1, 9: 100})
	start := territory.Coord{X: 1, Y: 2}
	goals := []territory.Coord{{X: 3, Y: 2}}

	res, err := astar.Search(g, start, goals)
	require.NoError(t, err)
	requireWellFormed(t, res, start, goals)
	require.InDelta(t, 4.0, res.Cost, 1e-12)
	require.NotContains(t, coords(res.Path), territory.Coord{X: 2, Y: 2})
	require.Equal(t, []territory.Coord{{X: 1, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 2}}, coords(res.Path))
}

func TestSearch_NearestOfSeveralGoals(t *testing.T) {
	g := mustGrid(t, [][]int{{1, 1, 1, 2, 2}}, territory.CostTable{1: 1, 2: 5})
	start := territory.Coord{X: 3, Y: 1}
	goals := []territory.Coord{{X: 5, Y: 1}, {X: 1, Y: 1}}

	res, err := astar.Search(g, start, goals)
	require.NoError(t, err)
	requireWellFormed(t, res, start, goals)
	goal, ok := res.Goal()
	require.True(t, ok)
	require.Equal(t, territory.Coord{X: 1, Y: 1}, goal.Coord)
	require.InDelta(t, 2.0, res.Cost, 1e-12)
}

func TestSearch_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	matrix := make([][]int, 12)
	for y := range matrix {
		matrix[y] = make([]int, 15)
		for x := range matrix[y] {
			matrix[y][x] = rng.Intn(4)
		}
	}
	g := mustGrid(t, matrix, territory.CostTable{0: 1, 1: 2, 2: 3.5, 3: 8})
	start := territory.Coord{X: 1, Y: 12}
	goals := []territory.Coord{{X: 15, Y: 1}, {X: 8, Y: 2}}

	first, err := astar.Search(g, start, goals)
	require.NoError(t, err)
	second, err := astar.Search(g, start, goals)
	require.NoError(t, err)
	require.Equal(t, first, second)
	requireWellFormed(t, first, start, goals)
}

// TestSearch_Strategies runs both frontiers over random terrain and checks
// each result on its own terms. On grids of at most six cells no simple path
// is long enough to be surcharged, so both reduce to uniform-cost search and
// must agree on the cost.
func TestSearch_Strategies(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	costs := territory.CostTable{0: 1, 1: 1.5, 2: 4}
	for trial := 0; trial < 40; trial++ {
		w, h := 1+rng.Intn(8), 1+rng.Intn(4)
		matrix := make([][]int, h)
		for y := range matrix {
			matrix[y] = make([]int, w)
			for x := range matrix[y] {
				matrix[y][x] = rng.Intn(3)
			}
		}
		g := mustGrid(t, matrix, costs)
		start := territory.Coord{X: 1 + rng.Intn(w), Y: 1 + rng.Intn(h)}
		goals := []territory.Coord{{X: 1 + rng.Intn(w), Y: 1 + rng.Intn(h)}}

		lin, err := astar.Search(g, start, goals, astar.WithSelection(astar.SelectLinearScan))
		require.NoError(t, err)
		pq, err := astar.Search(g, start, goals, astar.WithSelection(astar.SelectPriorityQueue))
		require.NoError(t, err)

		requireWellFormed(t, lin, start, goals)
		requireWellFormed(t, pq, start, goals)
		if g.Size() <= 6 {
			require.InDelta(t, lin.Cost, pq.Cost, 1e-9, "trial %d", trial)
		}
	}
}

// TestSearch_ConcurrentOnSharedGrid exercises the per-call scratch arena.
func TestSearch_ConcurrentOnSharedGrid(t *testing.T) {
	g := uniformGrid(t, 20, 20)
	start := territory.Coord{X: 1, Y: 1}
	goals := []territory.Coord{{X: 20, Y: 20}}
	want, err := astar.Search(g, start, goals)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]astar.Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = astar.Search(g, start, goals)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		require.Equal(t, want, results[i])
	}
}

func TestSearch_OnExpandSeesFinalCosts(t *testing.T) {
	g := uniformGrid(t, 4, 1)
	var got []float64
	_, err := astar.Search(g, territory.Coord{X: 1, Y: 1}, []territory.Coord{{X: 4, Y: 1}},
		astar.WithOnExpand(func(_ territory.Cell, gv, _ float64) { got = append(got, gv) }))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3}, got)
}

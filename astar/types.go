// Package astar defines the options, results and sentinel errors
// of the best-first territory search.
package astar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/terrapath/territory"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGrid is returned if a nil *territory.Grid is passed.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrNoGoals is returned when the goal list is empty.
	ErrNoGoals = errors.New("astar: at least one goal is required")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("astar: invalid option supplied")

	// ErrExpansionLimit is returned when MaxExpansions cells were expanded
	// without reaching a goal while the frontier was still non-empty.
	ErrExpansionLimit = errors.New("astar: expansion limit reached")
)

// Selection picks the frontier strategy used to find the next cell to expand.
type Selection int

const (
	// SelectLinearScan scans the open set in insertion order and takes the
	// first cell with the smallest f. It is the reference tie-break.
	SelectLinearScan Selection = iota

	// SelectPriorityQueue keeps the open set in a binary min-heap with lazy
	// decrease-key. Equal-f ties resolve by push order, which can differ from
	// SelectLinearScan once a cell has been re-relaxed. Because the step cost
	// depends on path length, a different tie choice may change the cost too.
	SelectPriorityQueue
)

// String returns the scenario-file spelling of s.
func (s Selection) String() string {
	switch s {
	case SelectLinearScan:
		return "linear"
	case SelectPriorityQueue:
		return "heap"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// ParseSelection is the inverse of Selection.String.
func ParseSelection(s string) (Selection, error) {
	switch s {
	case "", "linear":
		return SelectLinearScan, nil
	case "heap":
		return SelectPriorityQueue, nil
	default:
		return 0, fmt.Errorf("%w: unknown selection %q", ErrOptionViolation, s)
	}
}

// Option configures Search via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Search.
type Option func(*Options)

// Options holds the tunables of a single Search call.
type Options struct {
	// Ctx allows cancellation; checked once per main-loop iteration.
	Ctx context.Context

	// Selection chooses the open-set strategy.
	Selection Selection

	// MaxExpansions, if > 0, caps the number of expanded cells.
	// 0 disables the cap.
	MaxExpansions int

	// OnExpand is called each time a cell is moved to the closed set,
	// with its g and f values at that moment.
	OnExpand func(c territory.Cell, g, f float64)

	// Logger receives debug records about the run.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - SelectLinearScan
//   - no expansion cap
//   - a no-op OnExpand hook
//   - a logger that discards everything.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		Selection:     SelectLinearScan,
		MaxExpansions: 0,
		OnExpand:      func(territory.Cell, float64, float64) {},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSelection sets the open-set strategy.
func WithSelection(s Selection) Option {
	return func(o *Options) {
		switch s {
		case SelectLinearScan, SelectPriorityQueue:
			o.Selection = s
		default:
			o.err = fmt.Errorf("%w: unknown selection %d", ErrOptionViolation, int(s))
		}
	}
}

// WithMaxExpansions caps the number of expanded cells.
//
//	n > 0: stop with ErrExpansionLimit after n expansions
//	n == 0: no cap
//	n < 0: ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithOnExpand registers a hook that runs when a cell is closed.
func WithOnExpand(fn func(c territory.Cell, g, f float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithLogger routes debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result is the outcome of a Search.
//
// Path runs from the start to the reached goal, both inclusive; it is empty
// when no goal is reachable. Cost is the accumulated g of the final cell and
// Steps is len(Path)-1; both are zero when Found is false.
type Result struct {
	Path        []territory.Cell
	Cost        float64
	Steps       int
	Found       bool
	Expanded    int // cells moved to the closed set
	Relaxations int // g/f/predecessor writes on discovery or improvement
}

// Goal returns the last cell of the path, or false if no path was found.
func (r Result) Goal() (territory.Cell, bool) {
	if len(r.Path) == 0 {
		return territory.Cell{}, false
	}

	return r.Path[len(r.Path)-1], true
}

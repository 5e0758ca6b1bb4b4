package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/terrapath/astar"
	"github.com/katalvlaran/terrapath/scenario"
	"github.com/katalvlaran/terrapath/terrainfile"
	"github.com/katalvlaran/terrapath/territory"
)

// Version of the command.
const Version = "1.0.0"

// minArgs is file + start pair + one goal pair.
const minArgs = 5

var (
	// ErrArgumentCount indicates too few positional arguments or a dangling goal coordinate.
	ErrArgumentCount = errors.New("invalid number of arguments")
	// ErrInvalidArgument indicates an argument with the wrong format or value.
	ErrInvalidArgument = errors.New("invalid argument")
)

// request is one fully-parsed search invocation.
type request struct {
	territoryPath string
	start         territory.Coord
	goals         []territory.Coord
	opts          []astar.Option
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "terrapath",
		Usage:     "find the least-cost path across a weighted territory",
		ArgsUsage: "<territory.csv> <start-x> <start-y> <goal-x> <goal-y> [<goal-x> <goal-y> ...]",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "read territory, start and goals from a YAML or JSON scenario file",
				Sources: cli.EnvVars("TERRAPATH_SCENARIO"),
			},
			&cli.BoolFlag{
				Name:  "heap",
				Usage: "select the next cell with a priority queue instead of a linear scan",
			},
			&cli.IntFlag{
				Name:  "max-expansions",
				Usage: "abort after expanding this many cells (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:  "show-grid",
				Usage: "print the cost grid before searching",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log search progress to stderr",
				Sources: cli.EnvVars("TERRAPATH_VERBOSE"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, stdout, stderr)
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, stdout, stderr io.Writer) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// 1) Build the request from a scenario or from positional arguments
	var (
		req *request
		err error
	)
	if path := cmd.String("scenario"); path != "" {
		if cmd.Args().Len() > 0 {
			return fmt.Errorf("%w: positional arguments cannot be combined with --scenario", ErrArgumentCount)
		}
		req, err = fromScenario(path)
	} else {
		req, err = parseArgs(cmd.Args().Slice())
	}
	if err != nil {
		return err
	}

	// 2) Flags override scenario settings
	if cmd.Bool("heap") {
		req.opts = append(req.opts, astar.WithSelection(astar.SelectPriorityQueue))
	}
	if cmd.IsSet("max-expansions") {
		req.opts = append(req.opts, astar.WithMaxExpansions(int(cmd.Int("max-expansions"))))
	}
	req.opts = append(req.opts, astar.WithContext(ctx), astar.WithLogger(logger))

	// 3) Load the territory
	tr, err := terrainfile.Load(req.territoryPath)
	if err != nil {
		return err
	}
	g, err := tr.Grid()
	if err != nil {
		return fmt.Errorf("%s: %w", req.territoryPath, err)
	}
	fmt.Fprintf(stdout, "Matrix and costs table has been successfully loaded from %s\n", req.territoryPath)
	logger.Debug("territory loaded", slog.Int("width", g.Width()), slog.Int("height", g.Height()), slog.Int("codes", len(tr.Costs)))
	if cmd.Bool("show-grid") {
		printGrid(stdout, g)
	}

	// 4) Search and report
	fmt.Fprintf(stdout, "Searching Path from %s to %s ...\n", req.start, formatCoords(req.goals))
	res, err := astar.Search(g, req.start, req.goals, req.opts...)
	if err != nil {
		return err
	}
	if !res.Found {
		fmt.Fprintln(stdout, "No path found.")
		return nil
	}
	coords := make([]territory.Coord, len(res.Path))
	for i, c := range res.Path {
		coords[i] = c.Coord
	}
	fmt.Fprintf(stdout, "Path: %s\n", formatCoords(coords))
	fmt.Fprintf(stdout, "Path Length: %s\n", strconv.FormatFloat(res.Cost, 'f', -1, 64))
	fmt.Fprintf(stdout, "Number of Steps: %d\n", res.Steps)

	return nil
}

// parseArgs validates the positional form:
// <file.csv> <start-x> <start-y> (<goal-x> <goal-y>)+
func parseArgs(args []string) (*request, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("%w: at least %d arguments are necessary", ErrArgumentCount, minArgs)
	}
	if len(args)%2 == 0 {
		return nil, fmt.Errorf("%w: every goal needs an x and a y", ErrArgumentCount)
	}
	if !strings.HasSuffix(args[0], ".csv") {
		return nil, fmt.Errorf("%w: the first argument should be a .csv file, got %q", ErrInvalidArgument, args[0])
	}

	start, err := parseCoord(args[1], args[2])
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	goals := make([]territory.Coord, 0, (len(args)-3)/2)
	for i := 3; i < len(args); i += 2 {
		c, err := parseCoord(args[i], args[i+1])
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", len(goals)+1, err)
		}
		goals = append(goals, c)
	}

	return &request{territoryPath: args[0], start: start, goals: goals}, nil
}

func parseCoord(xs, ys string) (territory.Coord, error) {
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return territory.Coord{}, fmt.Errorf("%w: coordinates have to be integers, got %q %q", ErrInvalidArgument, xs, ys)
	}
	c, err := territory.NewCoord(x, y)
	if err != nil {
		return territory.Coord{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return c, nil
}

func fromScenario(path string) (*request, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	return &request{
		territoryPath: sc.Territory,
		start:         sc.StartCoord(),
		goals:         sc.GoalCoords(),
		opts:          sc.Options(),
	}, nil
}

// formatCoords renders coordinates as "[(x, y), (x, y)]".
func formatCoords(cs []territory.Coord) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func printGrid(w io.Writer, g *territory.Grid) {
	width := g.Width()
	for i, c := range g.Cells() {
		sep := "\t"
		if (i+1)%width == 0 {
			sep = "\n"
		}
		fmt.Fprintf(w, "%g%s", c.Cost, sep)
	}
}

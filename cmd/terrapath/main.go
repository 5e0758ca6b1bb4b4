// Command terrapath finds the least-cost route across a territory file.
//
// Usage:
//
//	terrapath [flags] <territory.csv> <start-x> <start-y> <goal-x> <goal-y> [<goal-x> <goal-y> ...]
//	terrapath [flags] --scenario <scenario.yaml>
//
// Coordinates are 1-based; x is the column and y the row of the territory
// matrix. Several goals may be given; the cheapest reachable one wins.
//
// A .env file in the working directory is loaded first, so TERRAPATH_VERBOSE
// and TERRAPATH_SCENARIO may be set there.
//
// Exit status is 0 when the search ran, whether or not a path exists, and 1
// on malformed input or any other failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/terrapath/astar"
	"github.com/katalvlaran/terrapath/territory"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newCommand(&stdout, &stderr).Run(context.Background(), append([]string{"terrapath"}, args...))

	return stdout.String(), stderr.String(), err
}

func TestParseArgs(t *testing.T) {
	cases := []struct {
		name string
		args []string
		err  error
	}{
		{"TooFew", []string{"a.csv", "1", "1", "2"}, ErrArgumentCount},
		{"DanglingGoal", []string{"a.csv", "1", "1", "2", "2", "3"}, ErrArgumentCount},
		{"NotCSV", []string{"a.txt", "1", "1", "2", "2"}, ErrInvalidArgument},
		{"NonInteger", []string{"a.csv", "1", "one", "2", "2"}, ErrInvalidArgument},
		{"NonPositiveStart", []string{"a.csv", "0", "1", "2", "2"}, territory.ErrInvalidCoordinate},
		{"NonPositiveGoal", []string{"a.csv", "1", "1", "2", "2", "3", "0"}, ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseArgs(tc.args)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseArgs_Valid(t *testing.T) {
	req, err := parseArgs([]string{"maps/x.csv", "10", "5", "4", "9", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, "maps/x.csv", req.territoryPath)
	assert.Equal(t, territory.Coord{X: 10, Y: 5}, req.start)
	assert.Equal(t, []territory.Coord{{X: 4, Y: 9}, {X: 2, Y: 3}}, req.goals)
}

func TestFormatCoords(t *testing.T) {
	assert.Equal(t, "[]", formatCoords(nil))
	assert.Equal(t, "[(1, 2), (3, 4)]", formatCoords([]territory.Coord{{X: 1, Y: 2}, {X: 3, Y: 4}}))
}

func TestRun_Positional(t *testing.T) {
	file := filepath.Join("testdata", "valley.csv")
	out, _, err := runCLI(t, file, "1", "1", "4", "3")
	require.NoError(t, err)

	want := strings.Join([]string{
		"Matrix and costs table has been successfully loaded from " + file,
		"Searching Path from (1, 1) to [(4, 3)] ...",
		"Path: [(1, 1), (1, 2), (1, 3), (2, 3), (3, 3), (4, 3)]",
		"Path Length: 5",
		"Number of Steps: 5",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRun_ScenarioWithHeap(t *testing.T) {
	out, _, err := runCLI(t, "--heap", "--scenario", filepath.Join("testdata", "valley.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Path Length: 5\n")
	assert.Contains(t, out, "Number of Steps: 5\n")
}

func TestRun_ShowGridAndVerbose(t *testing.T) {
	out, logs, err := runCLI(t, "--show-grid", "--verbose", filepath.Join("testdata", "valley.csv"), "1", "1", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1\t1\t2.5\t2.5\t8\n1\t20\t20\t2.5\t8\n")
	assert.Contains(t, out, "Number of Steps: 0\n")
	assert.Contains(t, logs, "solution found")
}

func TestRun_Failures(t *testing.T) {
	valley := filepath.Join("testdata", "valley.csv")

	_, _, err := runCLI(t, valley, "1", "1", "9", "9")
	assert.ErrorIs(t, err, territory.ErrOutOfBounds)

	_, _, err = runCLI(t, filepath.Join("testdata", "unpriced.csv"), "1", "1", "2", "1")
	assert.ErrorIs(t, err, territory.ErrMissingCostCode)

	_, _, err = runCLI(t, "--max-expansions", "2", valley, "1", "1", "5", "3")
	assert.ErrorIs(t, err, astar.ErrExpansionLimit)

	_, _, err = runCLI(t, "--scenario", filepath.Join("testdata", "valley.yaml"), valley)
	assert.ErrorIs(t, err, ErrArgumentCount)

	_, _, err = runCLI(t, "a.csv", "1")
	assert.ErrorIs(t, err, ErrArgumentCount)
}

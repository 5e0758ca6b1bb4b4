package terrainfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/terrapath/territory"
)

// Sentinel errors for territory files.
var (
	ErrNoMatrix      = errors.New("terrainfile: no matrix rows")
	ErrNoCostTable   = errors.New("terrainfile: cost table missing")
	ErrMalformedLine = errors.New("terrainfile: malformed line")
	ErrDuplicateCode = errors.New("terrainfile: duplicate terrain code")
)

// Separator is the field delimiter of territory files.
const Separator = ';'

// Territory is the parsed content of a territory file.
type Territory struct {
	Matrix [][]int             // terrain codes, Matrix[row][col]
	Costs  territory.CostTable // code → traversal cost
	Names  map[int]string      // code → human-readable name from the cost table
}

// Grid builds the immutable search grid from t.
func (t *Territory) Grid() (*territory.Grid, error) {
	return territory.NewGrid(t.Matrix, t.Costs)
}

// Load opens path and parses it with Read.
func Load(path string) (*Territory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terrainfile: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Read parses a territory description from r.
func Read(r io.Reader) (*Territory, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &Territory{
		Costs: make(territory.CostTable),
		Names: make(map[int]string),
	}

	// 1) Matrix rows until the ';' terminator
	terminated := false
	for {
		rec, line, err := next(cr)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isTerminator(rec) {
			terminated = true
			break
		}
		row, err := parseRow(rec, line)
		if err != nil {
			return nil, err
		}
		t.Matrix = append(t.Matrix, row)
	}
	if len(t.Matrix) == 0 {
		return nil, ErrNoMatrix
	}
	if !terminated {
		return nil, fmt.Errorf("%w: no ';' line after the matrix", ErrNoCostTable)
	}

	// 2) Header
	if _, _, err := next(cr); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: header line missing", ErrNoCostTable)
		}
		return nil, err
	}

	// 3) Cost rows until EOF or a second terminator
	for {
		rec, line, err := next(cr)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isTerminator(rec) {
			break
		}
		if err = t.addCost(rec, line); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// next returns the next record and its 1-based line number.
func next(cr *csv.Reader) ([]string, int, error) {
	rec, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, 0, io.EOF
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	line, _ := cr.FieldPos(0)

	return rec, line, nil
}

func isTerminator(rec []string) bool {
	return len(rec) > 0 && rec[0] == ""
}

func parseRow(rec []string, line int) ([]int, error) {
	row := make([]int, len(rec))
	for i, field := range rec {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d column %d: code %q is not an integer", ErrMalformedLine, line, i+1, field)
		}
		row[i] = v
	}

	return row, nil
}

func (t *Territory) addCost(rec []string, line int) error {
	if len(rec) < 3 {
		return fmt.Errorf("%w: line %d: want code;name;cost, got %d fields", ErrMalformedLine, line, len(rec))
	}
	code, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return fmt.Errorf("%w: line %d: code %q is not an integer", ErrMalformedLine, line, rec[0])
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		return fmt.Errorf("%w: line %d: cost %q is not a number", ErrMalformedLine, line, rec[2])
	}
	if _, dup := t.Costs[code]; dup {
		return fmt.Errorf("%w: %d (line %d)", ErrDuplicateCode, code, line)
	}
	t.Costs[code] = cost
	t.Names[code] = strings.TrimSpace(rec[1])

	return nil
}

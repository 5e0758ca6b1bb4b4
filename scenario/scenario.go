// Package scenario loads search scenarios: which territory file to read,
// where to start, which goals to reach and how to tune the engine.
//
// Scenarios are YAML by default and JSON when the file ends in ".json":
//
//	territory: maps/valley.csv   # relative paths resolve against the scenario file
//	start: {x: 1, y: 1}
//	goals:
//	  - {x: 5, y: 3}
//	selection: linear            # linear | heap
//	max_expansions: 0            # 0 = unlimited
//
// Unknown keys are rejected. Every failure from Validate wraps ErrInvalidScenario.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/terrapath/astar"
	"github.com/katalvlaran/terrapath/territory"
)

// ErrInvalidScenario is wrapped by every validation failure.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Format is the encoding of a scenario file.
type Format int

const (
	// FormatYAML is the default encoding.
	FormatYAML Format = iota
	// FormatJSON is selected by a ".json" extension.
	FormatJSON
)

// FormatOf picks the format from a file name.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// Point is a 1-based coordinate as written in a scenario file.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Coord converts p, failing with territory.ErrInvalidCoordinate if needed.
func (p Point) Coord() (territory.Coord, error) {
	return territory.NewCoord(p.X, p.Y)
}

// Scenario is one search request.
type Scenario struct {
	Territory     string  `yaml:"territory" json:"territory"`
	Start         Point   `yaml:"start" json:"start"`
	Goals         []Point `yaml:"goals" json:"goals"`
	Selection     string  `yaml:"selection,omitempty" json:"selection,omitempty"`
	MaxExpansions int     `yaml:"max_expansions,omitempty" json:"max_expansions,omitempty"`
}

// Load reads, decodes and validates the scenario at path. A relative
// Territory path is resolved against the directory of path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	sc, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !filepath.IsAbs(sc.Territory) {
		sc.Territory = filepath.Join(filepath.Dir(path), sc.Territory)
	}

	return sc, nil
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format Format) (*Scenario, error) {
	var sc Scenario
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// Validate checks every field of sc.
func (sc *Scenario) Validate() error {
	if strings.TrimSpace(sc.Territory) == "" {
		return fmt.Errorf("%w: territory path is required", ErrInvalidScenario)
	}
	if _, err := sc.Start.Coord(); err != nil {
		return fmt.Errorf("%w: start: %w", ErrInvalidScenario, err)
	}
	if len(sc.Goals) == 0 {
		return fmt.Errorf("%w: at least one goal is required", ErrInvalidScenario)
	}
	for i, p := range sc.Goals {
		if _, err := p.Coord(); err != nil {
			return fmt.Errorf("%w: goal %d: %w", ErrInvalidScenario, i+1, err)
		}
	}
	if _, err := astar.ParseSelection(sc.Selection); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if sc.MaxExpansions < 0 {
		return fmt.Errorf("%w: max_expansions cannot be negative (%d)", ErrInvalidScenario, sc.MaxExpansions)
	}

	return nil
}

// StartCoord returns the validated start coordinate.
func (sc *Scenario) StartCoord() territory.Coord {
	return territory.Coord{X: sc.Start.X, Y: sc.Start.Y}
}

// GoalCoords returns the validated goal coordinates in file order.
func (sc *Scenario) GoalCoords() []territory.Coord {
	out := make([]territory.Coord, len(sc.Goals))
	for i, p := range sc.Goals {
		out[i] = territory.Coord{X: p.X, Y: p.Y}
	}

	return out
}

// Options maps the engine settings of sc to astar options.
// sc must have passed Validate.
func (sc *Scenario) Options() []astar.Option {
	sel, _ := astar.ParseSelection(sc.Selection)

	return []astar.Option{
		astar.WithSelection(sel),
		astar.WithMaxExpansions(sc.MaxExpansions),
	}
}

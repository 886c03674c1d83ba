package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gatesimp/internal/catalog"
	"github.com/roach88/gatesimp/internal/ir"
)

// Scenario is a conformance scenario: one problem and the sequences to run
// through its engine, with the outcomes each one must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Problem is the path to a .cue file, CUE package directory or .yaml
	// problem. Relative paths are resolved against the scenario file.
	Problem string `yaml:"problem"`

	// Cases run in order against one engine.
	Cases []Case `yaml:"cases"`
}

// Case is one input sequence and its expectations.
type Case struct {
	// Name labels the case in errors and golden output. Defaults to
	// "case[i]".
	Name string `yaml:"name,omitempty"`

	// Sequence is the input, either "H T Td" or a YAML list.
	Sequence SymbolList `yaml:"sequence"`

	// Expect is optional. Without it only the built-in properties are
	// checked (length accounting, firing accounting, idempotence).
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the outcomes a case must produce. Nil fields are not
// checked.
type Expect struct {
	Removed *int        `yaml:"removed,omitempty"`
	Result  *SymbolList `yaml:"result,omitempty"`

	// Fired is the exact sequence of rule IDs that fire, in order.
	Fired *[]string `yaml:"fired,omitempty"`
}

// SymbolList decodes from either a whitespace/comma separated string or
// a YAML sequence of strings.
type SymbolList []ir.Symbol

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *SymbolList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = SymbolList(catalog.ParseSymbols(node.Value))
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*l = SymbolList(ir.Symbols(names...))
		return nil
	default:
		return fmt.Errorf("line %d: sequence must be a string or a list of symbols", node.Line)
	}
}

// label returns the case name, or its position when unnamed.
func (c Case) label(i int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("case[%d]", i)
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos ("expects:") fail loudly.
// A relative problem path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Problem != "" && !filepath.IsAbs(scenario.Problem) {
		scenario.Problem = filepath.Join(filepath.Dir(path), scenario.Problem)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every .yaml/.yml file directly under dir, sorted by
// file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", p, s.Name, prev)
		}
		seen[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Problem == "" {
		return fmt.Errorf("problem is required")
	}
	if _, err := os.Stat(s.Problem); os.IsNotExist(err) {
		return fmt.Errorf("problem file not found: %s", s.Problem)
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	names := make(map[string]int, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name != "" {
			if prev, dup := names[c.Name]; dup {
				return fmt.Errorf("cases[%d]: name %q already used by cases[%d]", i, c.Name, prev)
			}
			names[c.Name] = i
		}
		if c.Expect != nil && c.Expect.Removed != nil && *c.Expect.Removed < 0 {
			return fmt.Errorf("cases[%d].expect: removed must be non-negative", i)
		}
	}

	return nil
}

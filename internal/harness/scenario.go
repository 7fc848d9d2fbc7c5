package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/step"
)

// Scenario defines one engine conformance check.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Algorithm is a registry display name or key.
	Algorithm string `yaml:"algorithm"`

	// Input is the array to sort. Omitted means empty.
	Input []int `yaml:"input"`

	// Expect holds exact expectations on the finished run.
	Expect *Expect `yaml:"expect,omitempty"`

	// Assertions validate the trace.
	// Supported types: trace_contains, trace_count, trace_order, stable
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect lists exact expectations. Omitted fields are not checked.
type Expect struct {
	Sorted      *bool  `yaml:"sorted,omitempty"`
	Final       []int  `yaml:"final,omitempty"`
	Comparisons *int64 `yaml:"comparisons,omitempty"`
	Swaps       *int64 `yaml:"swaps,omitempty"`
	Writes      *int64 `yaml:"writes,omitempty"`
	Steps       *int   `yaml:"steps,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": a step of Kind (and I, J, Value if given) exists
	// - "trace_count": exactly Count steps match Kind (and I, J, Value)
	// - "trace_order": Sequence appears in order, gaps allowed
	// - "stable": equal elements keep their input order
	Type string `yaml:"type"`

	// Kind is the step kind name (trace_contains, trace_count).
	Kind string `yaml:"kind,omitempty"`

	// I, J and Value narrow the match when present.
	I     *int `yaml:"i,omitempty"`
	J     *int `yaml:"j,omitempty"`
	Value *int `yaml:"value,omitempty"`

	// Count is the expected number of matches (trace_count).
	Count int `yaml:"count,omitempty"`

	// Sequence lists steps in their text form, e.g. "compare(0, 1)",
	// "overwrite(2, 7)", "done" (trace_order).
	Sequence []string `yaml:"sequence,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
	AssertTraceOrder    = "trace_order"
	AssertStable        = "stable"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarioFiles returns the .yaml and .yml files under dir, sorted.
// A non-empty filter is a glob matched against the file name without
// extension.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	slices.Sort(files)
	return files, err
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Algorithm == "" {
		return fmt.Errorf("algorithm is required")
	}
	if _, err := engine.Lookup(s.Algorithm); err != nil {
		return fmt.Errorf("algorithm: %w", err)
	}

	if s.Expect == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions is required")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains, AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for %s", index, a.Type)
		}
		if _, err := step.ParseKind(a.Kind); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if a.Type == AssertTraceCount && a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertTraceOrder:
		if len(a.Sequence) == 0 {
			return fmt.Errorf("assertions[%d]: sequence list is required for trace_order", index)
		}
	case AssertStable:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

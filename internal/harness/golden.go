package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sortstep/internal/step"
)

// Snapshot renders a result as canonical JSON for golden comparison.
// Run ids and digests are left out so the snapshot depends only on the
// emitted steps.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	input := result.Input
	if input == nil {
		input = []int{}
	}
	final := result.Final
	if final == nil {
		final = []int{}
	}
	steps := result.Steps
	if steps == nil {
		steps = []step.Step[int]{}
	}

	return step.MarshalCanonical(map[string]any{
		"scenario_name": scenarioName,
		"algorithm":     result.Algorithm,
		"input":         input,
		"final":         final,
		"metrics":       result.Metrics,
		"steps":         steps,
	})
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

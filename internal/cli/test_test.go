package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairScenario = `name: pair
description: Reversed pair
algorithm: bubble
input: [2, 1]
expect:
  final: [1, 2]
  swaps: 1
`

const brokenScenario = `name: broken
description: Wrong comparison count
algorithm: insertion
input: [3, 2, 1]
expect:
  comparisons: 99
`

// scenarioDir lays out root/scenarios with the given files and returns
// the scenarios directory.
func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "scenarios")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestTestCommandBundledScenarios(t *testing.T) {
	out, _, err := execute(t, "test", filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ bubble_pair")
	assert.Contains(t, out, "✓ merge_stable")
	assert.Contains(t, out, "Test Summary: 7 passed, 0 failed, 7 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandGoldenLifecycle(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"pair.yaml": pairScenario})
	goldenPath := filepath.Join(filepath.Dir(dir), "golden", "pair.golden")

	// Without a golden file only the scenario's own checks apply.
	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ pair\n")
	assert.NoFileExists(t, goldenPath)

	out, _, err = execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ pair (golden updated)")
	require.FileExists(t, goldenPath)

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"pair"`)

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"stale":true}`), 0644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ pair")
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandFailures(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"pair.yaml":   pairScenario,
		"broken.yaml": brokenScenario,
		"bad.yaml":    "name: [unclosed",
	})

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "✗ bad.yaml")
	assert.Contains(t, out, "failed to load scenario")
	assert.Contains(t, out, "✓ pair")
	assert.Contains(t, out, "Test Summary: 1 passed, 2 failed, 3 total")
}

func TestTestCommandFilterAndJSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"pair.yaml":   pairScenario,
		"broken.yaml": brokenScenario,
	})

	out, _, err := execute(t, "test", dir, "--filter", "pa*", "--format", "json")
	require.NoError(t, err)

	var ok struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ok))
	assert.Equal(t, "ok", ok.Status)
	assert.Equal(t, TestResult{
		Scenarios: []ScenarioResult{{Name: "pair", Pass: true}},
		Passed:    1,
		Total:     1,
	}, ok.Data)

	out, _, err = execute(t, "test", dir, "--filter", "broken*", "--format", "json")
	require.Error(t, err)

	var failed CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &failed))
	assert.Equal(t, "error", failed.Status)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "E_TEST_FAILED", failed.Error.Code)
	assert.Equal(t, "1 scenario(s) failed", failed.Error.Message)
}

func TestTestCommandNoScenarios(t *testing.T) {
	dir := scenarioDir(t, nil)

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTestCommandMissingDir(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestGoldenDirFor(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", "golden"), goldenDirFor(filepath.Join("testdata", "scenarios")))
	assert.Equal(t, filepath.Join("testdata", "golden"), goldenDirFor(filepath.Join("testdata", "scenarios")+string(filepath.Separator)))
}

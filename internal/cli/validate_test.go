package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestValidateValidFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"plans/small.cue":     "sizes: [10]\nruns: 1\n",
		"scenarios/pair.yaml": pairScenario,
		"notes.txt":           "ignored when walking directories",
	})

	out, _, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Equal(t, "✓ 2 file(s) valid\n", out)
}

func TestValidateBundledTestdata(t *testing.T) {
	out, _, err := execute(t, "validate",
		filepath.Join("..", "workload", "testdata", "quick_vs_merge.cue"),
		filepath.Join("..", "harness", "testdata", "scenarios"),
	)
	require.NoError(t, err)
	assert.Equal(t, "✓ 8 file(s) valid\n", out)
}

func TestValidateRejections(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad_runs.cue":  "runs: 0\n",
		"bad_alg.cue":   "algorithms: [\"bogo\"]\n",
		"bad.yaml":      "name: x\nalgorithm: bubble\n",
		"readme.md":     "# plans",
		"good_plan.cue": "runs: 2\n",
	})

	out, _, err := execute(t, "validate",
		filepath.Join(dir, "bad_runs.cue"),
		filepath.Join(dir, "bad_alg.cue"),
		filepath.Join(dir, "bad.yaml"),
		filepath.Join(dir, "readme.md"),
		filepath.Join(dir, "good_plan.cue"),
	)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "4 file(s) rejected", err.Error())

	assert.Contains(t, out, "bad_runs.cue")
	assert.Contains(t, out, "[E203]")
	assert.Contains(t, out, "bad_alg.cue:1 [E204]")
	assert.Contains(t, out, "bad.yaml [E301]")
	assert.Contains(t, out, "readme.md [E302]")
	assert.NotContains(t, out, "good_plan.cue")
}

func TestValidateJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.yml": "algorithm: [\n"})

	out, _, err := execute(t, "validate", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string           `json:"code"`
			Message string           `json:"message"`
			Details ValidationResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_INVALID", resp.Error.Code)
	assert.False(t, resp.Error.Details.Valid)
	assert.Equal(t, 1, resp.Error.Details.Files)
	require.Len(t, resp.Error.Details.Errors, 1)
	assert.Equal(t, ErrCodeScenario, resp.Error.Details.Errors[0].Code)
}

func TestValidateMissingPath(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortstep/internal/store"
	"github.com/roach88/sortstep/internal/testutil"
)

func TestRunText(t *testing.T) {
	out, _, err := execute(t, "run", "bubble", "--input", "2, 1")
	require.NoError(t, err)

	assert.Contains(t, out, "Bubble Sort on 2 elements")
	assert.Contains(t, out, "Input: [2 1]")
	assert.Contains(t, out, "compare(0, 1)")
	assert.Contains(t, out, "Swapped arr[0] and arr[1]")
	assert.Contains(t, out, "Array is sorted - early exit")
	assert.Contains(t, out, "Final: [1 2]")
	assert.True(t, strings.HasSuffix(out, "Bubble Sort Complete | Comparisons: 1 | Swaps: 1\n"))
}

func TestRunQuiet(t *testing.T) {
	out, _, err := execute(t, "run", "Insertion Sort", "--input", "2,1", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "Insertion Sort on 2 elements\nInsertion Sort Complete | Comparisons: 1 | Writes: 2\n", out)
}

func TestRunJSON(t *testing.T) {
	out, _, err := execute(t, "run", "quick", "--input", "3,1,2", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   RunOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Quick Sort", resp.Data.Algorithm)
	assert.Equal(t, []int{3, 1, 2}, resp.Data.Input)
	assert.Equal(t, []int{1, 2, 3}, resp.Data.Final)
	assert.Equal(t, int64(2), resp.Data.Metrics.Comparisons)
	assert.Equal(t, int64(2), resp.Data.Metrics.Swaps)
	require.Len(t, resp.Data.Steps, 5)
	assert.Equal(t, "compare", resp.Data.Steps[0]["kind"])
	assert.Equal(t, "done", resp.Data.Steps[4]["kind"])
	assert.NotContains(t, resp.Data.Steps[4], "i", "done carries no positions")
	assert.Empty(t, resp.Data.RunID)
}

func TestRunGeneratedInput(t *testing.T) {
	out, _, err := execute(t, "run", "merge", "--size", "12", "--pattern", "reversed", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Merge Sort on 12 elements")
}

func TestRunEmptyGeneratedInput(t *testing.T) {
	out, _, err := execute(t, "run", "heap", "--size", "0", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Heap Sort Complete | Comparisons: 0 | Swaps: 0")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown algorithm", []string{"run", "bogo", "--input", "1"}, "E_UNKNOWN_ALGORITHM"},
		{"bad element", []string{"run", "bubble", "--input", "1,x,3"}, `element 1: "x" is not an integer`},
		{"blank element", []string{"run", "bubble", "--input", "1,,3"}, "element 1"},
		{"bad pattern", []string{"run", "bubble", "--pattern", "zigzag"}, "invalid input"},
		{"negative size", []string{"run", "bubble", "--size", "-1"}, "size must be non-negative"},
		{"missing algorithm", []string{"run"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.name != "missing algorithm" {
				assert.Equal(t, ExitCommandError, GetExitCode(err))
			}
		})
	}
}

func TestRunRecordsToDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	out := &bytes.Buffer{}
	opts := &RunOptions{
		RootOptions: &RootOptions{Format: "text"},
		Input:       "5,3,8,1",
		Database:    dbPath,
		Quiet:       true,
		IDGenerator: testutil.NewSequentialIDs("run"),
	}

	require.NoError(t, runSort(opts, "selection", newTestCmd(out, &bytes.Buffer{})))
	assert.Contains(t, out.String(), "Run: run-0001")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.GetRun(context.Background(), "run-0001")
	require.NoError(t, err)
	assert.Equal(t, "Selection Sort", run.Algorithm)
	assert.Equal(t, []int{5, 3, 8, 1}, run.Input)
	assert.Equal(t, []int{1, 3, 5, 8}, run.Final)
}

func TestParseInts(t *testing.T) {
	got, err := parseInts(" 4, -2,0 ,17")
	require.NoError(t, err)
	assert.Equal(t, []int{4, -2, 0, 17}, got)

	_, err = parseInts("1.5")
	require.Error(t, err)
}

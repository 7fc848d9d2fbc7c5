package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/store"
	"github.com/roach88/sortstep/internal/testutil"
)

type seededRun struct {
	alg   engine.Algorithm
	input []int
}

// seedDatabase records runs with sequential ids run-0001, run-0002, ...
func seedDatabase(t *testing.T, runs ...seededRun) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := store.Open(path, store.WithIDGenerator(testutil.NewSequentialIDs("run")))
	require.NoError(t, err)
	defer st.Close()

	for _, r := range runs {
		run, err := engine.Start(r.alg, r.input)
		require.NoError(t, err)
		_, err = st.WriteRun(context.Background(), r.alg, r.input, engine.Collect(run))
		require.NoError(t, err)
	}
	return path
}

func TestReplayAllRuns(t *testing.T) {
	db := seedDatabase(t,
		seededRun{engine.Bubble, []int{3, 1, 2}},
		seededRun{engine.Merge, []int{2, 1, 1}},
	)

	out, _, err := execute(t, "replay", "--db", db)
	require.NoError(t, err)

	assert.Contains(t, out, "Replay Summary: 2 run(s)")
	assert.Contains(t, out, "✓ Run: run-0001 (Bubble Sort, 7 steps)")
	assert.Contains(t, out, "✓ Run: run-0002 (Merge Sort,")
	assert.Contains(t, out, "✓ All runs replayed deterministically")
}

func TestReplaySingleRunJSON(t *testing.T) {
	db := seedDatabase(t,
		seededRun{engine.Quick, []int{3, 1, 2}},
		seededRun{engine.Heap, []int{1, 3, 2}},
	)

	out, _, err := execute(t, "replay", "--db", db, "--run", "run-0002", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   ReplaySummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.AllOK)
	require.Len(t, resp.Data.Runs, 1)

	res := resp.Data.Runs[0]
	assert.Equal(t, "run-0002", res.RunID)
	assert.Equal(t, "Heap Sort", res.Algorithm)
	assert.True(t, res.Deterministic)
	assert.True(t, res.Sorted)
	assert.Equal(t, res.StoredDigest, res.ReplayDigest)
}

func TestReplayDetectsTampering(t *testing.T) {
	db := seedDatabase(t, seededRun{engine.Selection, []int{2, 1}})

	raw, err := sql.Open("sqlite3", db)
	require.NoError(t, err)
	_, err = raw.Exec(`UPDATE steps SET description = 'edited' WHERE run_id = 'run-0001' AND seq = 0`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	out, _, err := execute(t, "replay", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Run: run-0001")
	assert.Contains(t, out, "stored steps do not match the recorded digest")
	assert.Contains(t, out, "✗ Replay verification failed")

	out, _, err = execute(t, "replay", "--db", db, "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"E_REPLAY"`)
}

func TestReplayEmptyDatabase(t *testing.T) {
	db := seedDatabase(t)

	out, _, err := execute(t, "replay", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "No runs found in database.\n", out)
}

func TestReplayErrors(t *testing.T) {
	db := seedDatabase(t, seededRun{engine.Bubble, []int{1}})

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing database", []string{"replay", "--db", filepath.Join(t.TempDir(), "none.db")}, "database not found"},
		{"unknown run", []string{"replay", "--db", db, "--run", "run-9999"}, "run not found: run-9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestReplayRequiresDB(t *testing.T) {
	_, _, err := execute(t, "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"db" not set`)
}

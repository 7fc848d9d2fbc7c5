package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/sortstep/internal/query"
	"github.com/roach88/sortstep/internal/step"
)

const runColumns = `id, algorithm, input, final, comparisons, swaps, writes, step_count, digest, seq`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// GetRun returns the run with the given id.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// LatestRun returns the most recently written run.
// Returns an error wrapping sql.ErrNoRows if the store is empty.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT 1`)
	run, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns every run in write order.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LoadSteps returns the full step sequence of a run in emission order.
func (s *Store) LoadSteps(ctx context.Context, runID string) ([]step.Step[int], error) {
	stored, err := s.QuerySteps(ctx, query.Filter{RunID: runID})
	if err != nil {
		return nil, err
	}
	steps := make([]step.Step[int], len(stored))
	for i, st := range stored {
		steps[i] = st.Step
	}
	return steps, nil
}

// QuerySteps returns the steps of a run matching f, in emission order.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) QuerySteps(ctx context.Context, f query.Filter) ([]StoredStep, error) {
	sqlText, params, err := query.Compile(f)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	out := []StoredStep{}
	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return out, nil
}

// ListBenchResults returns stored benchmark results in insertion order.
// An empty benchID returns results of every benchmark.
func (s *Store) ListBenchResults(ctx context.Context, benchID string) ([]BenchRecord, error) {
	q := `
		SELECT bench_id, algorithm, size, pattern, seed, runs, average_ns, min_ns, max_ns, comparisons, swaps, writes
		FROM bench_results`
	var args []any
	if benchID != "" {
		q += ` WHERE bench_id = ?`
		args = append(args, benchID)
	}
	q += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query bench results: %w", err)
	}
	defer rows.Close()

	out := []BenchRecord{}
	for rows.Next() {
		var rec BenchRecord
		var seed int64
		if err := rows.Scan(
			&rec.BenchID,
			&rec.Algorithm,
			&rec.Size,
			&rec.Pattern,
			&seed,
			&rec.Runs,
			&rec.AverageNS,
			&rec.MinNS,
			&rec.MaxNS,
			&rec.Metrics.Comparisons,
			&rec.Metrics.Swaps,
			&rec.Metrics.Writes,
		); err != nil {
			return nil, fmt.Errorf("scan bench result: %w", err)
		}
		rec.Seed = uint64(seed)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bench results: %w", err)
	}
	return out, nil
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var inputJSON, finalJSON string
	err := row.Scan(
		&run.ID,
		&run.Algorithm,
		&inputJSON,
		&finalJSON,
		&run.Metrics.Comparisons,
		&run.Metrics.Swaps,
		&run.Metrics.Writes,
		&run.StepCount,
		&run.Digest,
		&run.Seq,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if run.Input, err = unmarshalArray(inputJSON); err != nil {
		return nil, fmt.Errorf("scan run %s: %w", run.ID, err)
	}
	if run.Final, err = unmarshalArray(finalJSON); err != nil {
		return nil, fmt.Errorf("scan run %s: %w", run.ID, err)
	}
	return &run, nil
}

func scanStep(rows *sql.Rows) (StoredStep, error) {
	var (
		st    StoredStep
		kind  string
		value sql.NullInt64
	)
	if err := rows.Scan(&st.Seq, &kind, &st.Step.I, &st.Step.J, &value, &st.Step.Description); err != nil {
		return StoredStep{}, fmt.Errorf("scan step: %w", err)
	}

	k, err := step.ParseKind(kind)
	if err != nil {
		return StoredStep{}, fmt.Errorf("scan step %d: %w", st.Seq, err)
	}
	st.Step.Kind = k
	if value.Valid {
		st.Step.Value = int(value.Int64)
	}
	return st, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/roach88/sortstep/internal/bench"
	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/step"
)

// Record executes alg over input and stores the complete run.
func (s *Store) Record(ctx context.Context, alg engine.Algorithm, input []int) (*Run, error) {
	r, err := engine.Start(alg, input)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	return s.WriteRun(ctx, alg, input, engine.Collect(r))
}

// WriteRun stores a run header and its full step sequence.
//
// The steps are replayed onto input before anything is written, so a
// sequence that does not apply cleanly is rejected. The run row and every
// step row are inserted in one transaction.
func (s *Store) WriteRun(ctx context.Context, alg engine.Algorithm, input []int, steps []step.Step[int]) (*Run, error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("write run: %w", engine.NewUnknownAlgorithmError(alg.String()))
	}

	final, err := step.Replay(input, steps)
	if err != nil {
		return nil, fmt.Errorf("write run: %w", err)
	}
	digest, err := step.Digest(steps)
	if err != nil {
		return nil, fmt.Errorf("write run: %w", err)
	}

	run := &Run{
		ID:        s.ids.NewID(),
		Algorithm: alg.String(),
		Input:     append([]int{}, input...),
		Final:     final,
		Metrics:   step.Tally(steps),
		StepCount: len(steps),
		Digest:    digest,
	}

	inputJSON, err := marshalArray(run.Input)
	if err != nil {
		return nil, fmt.Errorf("write run: %w", err)
	}
	finalJSON, err := marshalArray(run.Final)
	if err != nil {
		return nil, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return nil, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, algorithm, input, final, comparisons, swaps, writes, step_count, digest, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Algorithm,
		inputJSON,
		finalJSON,
		run.Metrics.Comparisons,
		run.Metrics.Swaps,
		run.Metrics.Writes,
		run.StepCount,
		run.Digest,
		run.Seq,
	)
	if err != nil {
		return nil, fmt.Errorf("write run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO steps (run_id, seq, kind, i, j, value, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("write run: prepare steps: %w", err)
	}
	defer stmt.Close()

	for seq, st := range steps {
		var value any
		if st.Kind == step.KindOverwrite {
			value = st.Value
		}
		if _, err := stmt.ExecContext(ctx, run.ID, seq, st.Kind.String(), st.I, st.J, value, st.Description); err != nil {
			return nil, fmt.Errorf("write run: step %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

// WriteBench stores every result of a benchmark report under one new
// bench id, which is returned.
func (s *Store) WriteBench(ctx context.Context, rep *bench.Report) (string, error) {
	benchID := s.ids.NewID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("write bench: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, res := range rep.Results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bench_results
			(bench_id, algorithm, size, pattern, seed, runs, average_ns, min_ns, max_ns, comparisons, swaps, writes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			benchID,
			res.Algorithm,
			res.Size,
			string(rep.Config.Pattern),
			int64(rep.Config.Seed),
			res.Runs,
			int64(res.Average),
			int64(res.Min),
			int64(res.Max),
			res.Metrics.Comparisons,
			res.Metrics.Swaps,
			res.Metrics.Writes,
		)
		if err != nil {
			return "", fmt.Errorf("write bench: %s size %d: %w", res.Algorithm, res.Size, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("write bench: commit: %w", err)
	}
	return benchID, nil
}

package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/step"
)

// ReplayResult reports whether a stored run still reproduces.
type ReplayResult struct {
	RunID     string `json:"run_id"`
	Algorithm string `json:"algorithm"`
	StepCount int    `json:"step_count"`

	// StoredDigest is the digest recorded at write time; ReplayDigest is
	// the digest of a fresh execution over the stored input.
	StoredDigest string `json:"stored_digest"`
	ReplayDigest string `json:"replay_digest"`

	// Deterministic is true when the fresh execution emitted exactly the
	// stored sequence.
	Deterministic bool `json:"deterministic"`

	// Sorted is true when applying the stored steps to the stored input
	// reproduces the stored final array and that array is in order.
	Sorted bool `json:"sorted"`

	// Mismatch describes the first problem found, if any.
	Mismatch string `json:"mismatch,omitempty"`
}

// OK reports whether the run passed every check.
func (r *ReplayResult) OK() bool {
	return r.Deterministic && r.Sorted && r.Mismatch == ""
}

// ReplayRun verifies a stored run two ways: the stored steps are applied
// to the stored input, and the engine is executed again over the same
// input and its digest compared with the stored one.
//
// Verification failures are reported in the result; the error is reserved
// for storage problems and unknown algorithms.
func (s *Store) ReplayRun(ctx context.Context, runID string) (*ReplayResult, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	steps, err := s.LoadSteps(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	res := &ReplayResult{
		RunID:        run.ID,
		Algorithm:    run.Algorithm,
		StepCount:    len(steps),
		StoredDigest: run.Digest,
	}

	// Stored log against stored header.
	loaded, err := step.Digest(steps)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	final, applyErr := step.Replay(run.Input, steps)
	switch {
	case loaded != run.Digest:
		res.Mismatch = "stored steps do not match the recorded digest"
	case applyErr != nil:
		res.Mismatch = fmt.Sprintf("stored steps do not apply: %v", applyErr)
	case !slices.Equal(final, run.Final):
		res.Mismatch = fmt.Sprintf("replayed final %v differs from stored %v", final, run.Final)
	case step.Tally(steps) != run.Metrics:
		res.Mismatch = fmt.Sprintf("step counts %+v differ from stored metrics %+v", step.Tally(steps), run.Metrics)
	case len(steps) != run.StepCount:
		res.Mismatch = fmt.Sprintf("%d steps stored, header says %d", len(steps), run.StepCount)
	default:
		res.Sorted = slices.IsSorted(final)
		if !res.Sorted {
			res.Mismatch = fmt.Sprintf("replayed final %v is not sorted", final)
		}
	}

	// Fresh execution against stored digest.
	alg, err := engine.Lookup(run.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	r, err := engine.Start(alg, run.Input)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	fresh := engine.Collect(r)
	if res.ReplayDigest, err = step.Digest(fresh); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	res.Deterministic = res.ReplayDigest == run.Digest
	if !res.Deterministic && res.Mismatch == "" {
		res.Mismatch = firstDifference(steps, fresh)
	}

	return res, nil
}

// firstDifference describes where two step sequences diverge.
func firstDifference(stored, fresh []step.Step[int]) string {
	for i := range min(len(stored), len(fresh)) {
		if stored[i] != fresh[i] {
			return fmt.Sprintf("step %d: stored %v, replayed %v", i, stored[i], fresh[i])
		}
	}
	return fmt.Sprintf("stored %d steps, replayed %d", len(stored), len(fresh))
}

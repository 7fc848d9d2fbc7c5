package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/step"
	"github.com/roach88/sortstep/internal/store"
	"github.com/roach88/sortstep/internal/testutil"
)

// Harness is the test execution engine.
// It runs one scenario against a fresh in-memory store.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with
// run ids derived from the scenario name so results are reproducible.
//
// Execution flow:
// 1. Resolve the algorithm and start a run
// 2. Drive the run, checking core properties after every step
// 3. Store the run and its steps
// 4. Check expectations and evaluate assertions
//
// The error return is reserved for problems running the scenario at all;
// failed checks are reported in Result.
func Run(scenario *Scenario) (*Result, error) {
	alg, err := engine.Lookup(scenario.Algorithm)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequentialIDs(scenario.Name)))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	return h.run(context.Background(), scenario, alg)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario, alg engine.Algorithm) (*Result, error) {
	input := scenario.Input
	if input == nil {
		input = []int{}
	}

	r, err := engine.Start(alg, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	result := NewResult()
	result.Algorithm = alg.String()
	result.Input = slices.Clone(input)

	h.logger.Debug("scenario started", "scenario", scenario.Name, "algorithm", alg.String(), "n", len(input))

	checkCoreProperties(r, input, result)
	result.Metrics = r.Metrics()

	run, err := h.store.WriteRun(ctx, alg, input, result.Steps)
	if err != nil {
		// A sequence that does not replay has already been reported.
		if result.Pass {
			return nil, fmt.Errorf("failed to store run: %w", err)
		}
		return result, nil
	}
	result.RunID = run.ID
	result.Digest = run.Digest

	if scenario.Expect != nil {
		checkExpect(scenario.Expect, result)
	}

	actx := &AssertionContext{
		Store: h.store,
		Ctx:   ctx,
		RunID: run.ID,
		Alg:   alg,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished", "scenario", scenario.Name, "pass", result.Pass)
	return result, nil
}

// checkCoreProperties drives r to completion, maintaining an independent
// mirror of the array. Only the first violation of each property is
// reported.
func checkCoreProperties(r *engine.Run[int], input []int, result *Result) {
	mirror := slices.Clone(input)
	var (
		replayBroken bool
		countsBroken bool
		doneNotLast  bool
		dones        int
		tally        step.Metrics
	)

	for s := range r.All() {
		idx := len(result.Steps)
		result.Steps = append(result.Steps, s)
		tally.Record(s.Kind)

		if dones > 0 {
			doneNotLast = true
		}
		if s.Kind == step.KindDone {
			dones++
		}

		if !replayBroken {
			if err := step.Apply(mirror, s); err != nil {
				replayBroken = true
				result.AddError(fmt.Sprintf("replay: step %d (%v): %v", idx, s, err))
			} else if snap := r.Snapshot(); !slices.Equal(mirror, snap) {
				replayBroken = true
				result.AddError(fmt.Sprintf("replay: after step %d (%v) mirror %v differs from engine %v", idx, s, mirror, snap))
			}
		}

		if !countsBroken && tally != r.Metrics() {
			countsBroken = true
			result.AddError(fmt.Sprintf("counters: after step %d engine reports %+v, steps give %+v", idx, r.Metrics(), tally))
		}
	}

	if dones != 1 {
		result.AddError(fmt.Sprintf("terminal: got %d done steps, want exactly 1", dones))
	}
	if doneNotLast {
		result.AddError("terminal: steps emitted after done")
	}

	result.Final = mirror
}

// checkExpect compares the finished run against exact expectations.
func checkExpect(e *Expect, result *Result) {
	if e.Sorted != nil && slices.IsSorted(result.Final) != *e.Sorted {
		result.AddError(fmt.Sprintf("expect.sorted: want %t, final is %v", *e.Sorted, result.Final))
	}
	if e.Final != nil && !slices.Equal(e.Final, result.Final) {
		result.AddError(fmt.Sprintf("expect.final: want %v, got %v", e.Final, result.Final))
	}
	if e.Comparisons != nil && *e.Comparisons != result.Metrics.Comparisons {
		result.AddError(fmt.Sprintf("expect.comparisons: want %d, got %d", *e.Comparisons, result.Metrics.Comparisons))
	}
	if e.Swaps != nil && *e.Swaps != result.Metrics.Swaps {
		result.AddError(fmt.Sprintf("expect.swaps: want %d, got %d", *e.Swaps, result.Metrics.Swaps))
	}
	if e.Writes != nil && *e.Writes != result.Metrics.Writes {
		result.AddError(fmt.Sprintf("expect.writes: want %d, got %d", *e.Writes, result.Metrics.Writes))
	}
	if e.Steps != nil && *e.Steps != len(result.Steps) {
		result.AddError(fmt.Sprintf("expect.steps: want %d, got %d", *e.Steps, len(result.Steps)))
	}
}

package engine

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"

	"github.com/roach88/sortstep/internal/step"
)

// machine is one algorithm's resumable body.
//
// advance performs transitions until it has exactly one step to report and
// returns it with ok=true. It returns ok=false once the algorithm has
// finished; the Run then emits the terminal Done step itself.
type machine[T any] interface {
	advance(r *Run[T]) (s step.Step[T], ok bool)
}

// Run is one execution of an engine over a private copy of its input.
//
// Thread-safety: a Run is owned by a single consumer. Distinct Runs share
// no state and may be driven from different goroutines.
type Run[T any] struct {
	alg     Algorithm
	arr     []T
	cmp     func(a, b T) int
	metrics step.Metrics
	body    machine[T]
	emitted int
	done    bool
}

// Start begins a run of alg over a copy of input using the natural order of T.
//
// Floating-point NaN has no place in a total order; an input containing one
// is rejected before any step is produced.
func Start[T cmp.Ordered](alg Algorithm, input []T) (*Run[T], error) {
	for i, v := range input {
		if v != v {
			return nil, NewUnorderedError(alg, i)
		}
	}
	return StartFunc(alg, input, cmp.Compare[T])
}

// StartByName is Start with a registry lookup.
func StartByName[T cmp.Ordered](name string, input []T) (*Run[T], error) {
	alg, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return Start(alg, input)
}

// StartFunc begins a run ordering elements with compare, which must return
// a negative number when a < b, zero when equal and a positive number when
// a > b, consistently for the lifetime of the run.
func StartFunc[T any](alg Algorithm, input []T, compare func(a, b T) int) (*Run[T], error) {
	if !alg.Valid() {
		return nil, NewUnknownAlgorithmError(alg.String())
	}
	if compare == nil {
		return nil, &InputError{
			Code:      ErrCodeNilCompare,
			Message:   "compare function is required",
			Algorithm: alg.String(),
			Index:     -1,
		}
	}

	arr := make([]T, len(input))
	copy(arr, input)

	r := &Run[T]{alg: alg, arr: arr, cmp: compare}
	r.body = newMachine[T](alg, len(arr))

	slog.Debug("run started", "algorithm", alg.String(), "n", len(arr))
	return r, nil
}

func newMachine[T any](alg Algorithm, n int) machine[T] {
	switch alg {
	case Bubble:
		return &bubbleMachine[T]{n: n}
	case Selection:
		return &selectionMachine[T]{n: n}
	case Insertion:
		return &insertionMachine[T]{n: n, i: 1}
	case Merge:
		return newMergeMachine[T](n)
	case Quick:
		return newQuickMachine[T](n)
	case Heap:
		return newHeapMachine[T](n)
	default:
		panic(fmt.Sprintf("engine: no machine for %v", alg))
	}
}

// Next returns the next step, or ok=false once the Done step has been
// returned. Counters are updated before the step is handed out, so Metrics
// always agrees with the steps returned so far.
func (r *Run[T]) Next() (s step.Step[T], ok bool) {
	if r.done {
		return step.Step[T]{}, false
	}
	if s, ok = r.body.advance(r); ok {
		r.metrics.Record(s.Kind)
		r.emitted++
		return s, true
	}

	r.done = true
	r.emitted++
	slog.Debug("run finished",
		"algorithm", r.alg.String(),
		"steps", r.emitted,
		"comparisons", r.metrics.Comparisons,
		"swaps", r.metrics.Swaps,
		"writes", r.metrics.Writes,
	)
	return step.Done[T](r.summary()), true
}

// All returns the remaining steps as a single-pass sequence. Breaking out of
// the loop abandons nothing: a later call to Next or All resumes where the
// loop stopped.
func (r *Run[T]) All() iter.Seq[step.Step[T]] {
	return func(yield func(step.Step[T]) bool) {
		for {
			s, ok := r.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Algorithm returns the algorithm this run executes.
func (r *Run[T]) Algorithm() Algorithm { return r.alg }

// Metrics returns the counters for the steps emitted so far.
func (r *Run[T]) Metrics() step.Metrics { return r.metrics }

// Emitted returns how many steps have been returned, Done included.
func (r *Run[T]) Emitted() int { return r.emitted }

// Len returns the working array length.
func (r *Run[T]) Len() int { return len(r.arr) }

// Finished reports whether the Done step has been returned.
func (r *Run[T]) Finished() bool { return r.done }

// Snapshot returns a copy of the working array.
func (r *Run[T]) Snapshot() []T {
	out := make([]T, len(r.arr))
	copy(out, r.arr)
	return out
}

func (r *Run[T]) summary() string {
	e := r.alg.Entry()
	if e.Reports == CounterWrites {
		return fmt.Sprintf("%s Complete | Comparisons: %d | Writes: %d", e.Name, r.metrics.Comparisons, r.metrics.Writes)
	}
	return fmt.Sprintf("%s Complete | Comparisons: %d | Swaps: %d", e.Name, r.metrics.Comparisons, r.metrics.Swaps)
}

// order compares working-array positions i and j.
func (r *Run[T]) order(i, j int) int {
	return r.cmp(r.arr[i], r.arr[j])
}

func (r *Run[T]) swap(i, j int) {
	r.arr[i], r.arr[j] = r.arr[j], r.arr[i]
}

// Drain consumes the rest of the run and returns its final metrics.
// This is the benchmark path: steps are discarded unseen.
func Drain[T any](r *Run[T]) step.Metrics {
	for {
		if _, ok := r.Next(); !ok {
			return r.metrics
		}
	}
}

// Collect consumes the rest of the run and returns the steps.
func Collect[T any](r *Run[T]) []step.Step[T] {
	var steps []step.Step[T]
	for s := range r.All() {
		steps = append(steps, s)
	}
	return steps
}

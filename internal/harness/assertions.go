package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/query"
	"github.com/roach88/sortstep/internal/step"
	"github.com/roach88/sortstep/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string           // Assertion type for categorization
	Expected string           // Human-readable expected outcome
	Actual   string           // Human-readable actual outcome
	Trace    []step.Step[int] // Full trace for debugging context
}

// maxTraceLines bounds the trace excerpt printed with a failure.
const maxTraceLines = 40

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nTrace:\n")
		for i, s := range e.Trace {
			if i == maxTraceLines {
				fmt.Fprintf(&buf, "  ... %d more\n", len(e.Trace)-i)
				break
			}
			fmt.Fprintf(&buf, "  [%d] %s\n", i, s)
		}
	}

	return buf.String()
}

// AssertionContext carries what trace assertions query against.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
	RunID string
	Alg   engine.Algorithm
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(actx, result, a)
		case AssertTraceCount:
			err = assertTraceCount(actx, result, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Steps, a)
		case AssertStable:
			err = assertStable(actx.Alg, result.Input)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

// matchFilter builds the step query for kind plus any positional fields.
func matchFilter(runID string, a Assertion) query.Filter {
	preds := []query.Predicate{query.Equals{Column: query.ColumnKind, Value: a.Kind}}
	if a.I != nil {
		preds = append(preds, query.Equals{Column: query.ColumnI, Value: *a.I})
	}
	if a.J != nil {
		preds = append(preds, query.Equals{Column: query.ColumnJ, Value: *a.J})
	}
	if a.Value != nil {
		preds = append(preds, query.Equals{Column: query.ColumnValue, Value: *a.Value})
	}

	var where query.Predicate = query.And{Predicates: preds}
	if len(preds) == 1 {
		where = preds[0]
	}
	return query.Filter{RunID: runID, Where: where}
}

// describeMatch renders the fields an assertion matches on.
func describeMatch(a Assertion) string {
	parts := []string{a.Kind}
	if a.I != nil {
		parts = append(parts, fmt.Sprintf("i=%d", *a.I))
	}
	if a.J != nil {
		parts = append(parts, fmt.Sprintf("j=%d", *a.J))
	}
	if a.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%d", *a.Value))
	}
	return strings.Join(parts, " ")
}

// assertTraceContains checks that at least one stored step matches.
func assertTraceContains(actx *AssertionContext, result *Result, a Assertion) error {
	f := matchFilter(actx.RunID, a)
	f.Limit = 1
	found, err := actx.Store.QuerySteps(actx.Ctx, f)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("a step %s", describeMatch(a)),
		Actual:   "not found in trace",
		Trace:    result.Steps,
	}
}

// assertTraceCount checks the exact number of matching stored steps.
func assertTraceCount(actx *AssertionContext, result *Result, a Assertion) error {
	found, err := actx.Store.QuerySteps(actx.Ctx, matchFilter(actx.RunID, a))
	if err != nil {
		return err
	}
	if len(found) == a.Count {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%d steps %s", a.Count, describeMatch(a)),
		Actual:   fmt.Sprintf("%d steps", len(found)),
		Trace:    result.Steps,
	}
}

// assertTraceOrder checks that Sequence is a subsequence of the trace.
// Each entry must match a step after the one matched by its predecessor.
func assertTraceOrder(trace []step.Step[int], a Assertion) error {
	pos := 0
	for n, want := range a.Sequence {
		want = strings.TrimSpace(want)
		found := false
		for pos < len(trace) {
			got := trace[pos].String()
			pos++
			if got == want {
				found = true
				break
			}
		}
		if !found {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("steps in order: %v", a.Sequence),
				Actual:   fmt.Sprintf("no %q after entry %d", want, n),
				Trace:    trace,
			}
		}
	}
	return nil
}

// tagged pairs a value with its input position.
type tagged struct {
	value, index int
}

// assertStable sorts input tagged with positions, ordering by value only,
// and checks that equal values come out in input order.
func assertStable(alg engine.Algorithm, input []int) error {
	items := make([]tagged, len(input))
	for i, v := range input {
		items[i] = tagged{value: v, index: i}
	}

	r, err := engine.StartFunc(alg, items, func(a, b tagged) int { return a.value - b.value })
	if err != nil {
		return err
	}
	engine.Drain(r)
	out := r.Snapshot()

	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1], out[i]
		if prev.value == cur.value && prev.index > cur.index {
			return &AssertionError{
				Type:     AssertStable,
				Expected: fmt.Sprintf("equal values %d keep input order", cur.value),
				Actual:   fmt.Sprintf("input position %d placed before %d", prev.index, cur.index),
			}
		}
	}
	return nil
}

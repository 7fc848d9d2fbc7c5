// Package harness runs sort scenarios and checks the traces they produce.
//
// A scenario names an algorithm and an input, then states what the run
// must do: expected counters, final array, step count, and assertions over
// the trace (trace_contains, trace_count, trace_order, stable).
//
// Every scenario is also held to the properties all engines share,
// whether or not it asserts anything:
//   - the replay invariant holds after every step
//   - counters agree with the steps emitted so far
//   - the sequence ends with exactly one Done step
//
// Each run is written to a fresh in-memory store and trace assertions are
// answered with step queries against it, the same path the trace command
// uses on a real database.
//
// Golden files hold the canonical JSON snapshot of a run. Tests compare
// with goldie; the CLI compares bytes and rewrites files on --update.
package harness

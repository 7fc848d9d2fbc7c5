// Package engine implements the instrumented sorting engines.
//
// Each engine turns a sorting algorithm into a lazy, single-pass sequence of
// step.Step values. A consumer pulls steps one at a time with Run.Next (or
// ranges over Run.All) and may stop at any point; the engine holds no
// external resource, so abandonment needs no cleanup.
//
// ARCHITECTURE:
//
// Explicit State Machines:
// Every algorithm is a machine whose advance method performs transitions
// until it has exactly one step to report, then returns it. All loop
// variables live in the machine, so execution suspends between any two
// steps without goroutines or native coroutines. Merge and quick sort keep
// an explicit work-list of pending subranges instead of recursing.
//
// Emission Order:
//   - Compare is emitted before its result is used to pick a branch
//   - Swap and Overwrite are emitted after the mutation is applied
//   - Exactly one Done step ends every run, and nothing follows it
//
// These rules give the replay invariant: at any point the private working
// array equals the caller's input with every emitted Swap and Overwrite
// applied in order.
//
// Determinism:
// Engines contain no randomness. Two runs over equal inputs emit identical
// sequences, which is what the store's replay verification relies on.
//
// Ownership:
// A Run copies its input and owns the copy, the merge auxiliary buffer and
// its counters exclusively. Runs share nothing, so independent runs may be
// interleaved by one scheduler without synchronization. A single Run is not
// safe for concurrent use.
package engine

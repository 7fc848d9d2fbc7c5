// Package step defines the operation model shared by every sorting engine
// and every consumer of an engine's output.
//
// A Step is one atomic, externally observable operation: an element
// comparison, a swap, a positional overwrite, an early-exit marker or the
// terminal summary. Steps are produced by value and never mutated after
// emission.
//
// This package imports nothing internal. Engines, renderers, the benchmark
// driver, the harness and the store all build on it.
//
// Key constraints:
//   - The Kind set is closed: Compare, Swap, Overwrite, Complete, Done
//   - Indices are NoIndex (-1) whenever a kind carries no positional meaning
//   - Metrics counters only ever grow, one increment per matching step
//   - Canonical encoding is the only serialization used for digests
package step

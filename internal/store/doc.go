// Package store provides SQLite-backed durable storage for sort run logs.
//
// The store keeps three tables:
//   - runs: one row per recorded run (input, final array, metrics, digest)
//   - steps: every emitted step of a run, keyed by (run_id, seq)
//   - bench_results: benchmark measurements, grouped by bench_id
//
// # Critical Patterns
//
// Logical Identity and Time
//   - All ordering uses seq INTEGER columns, NEVER timestamps
//   - Run ids are UUIDv7 by default; tests inject a deterministic generator
//
// Atomic Runs
//   - WriteRun inserts the run row and all of its steps in one transaction
//   - A reader never observes a run with a partial step log
//
// Deterministic Query Results
//   - Every step query ends with ORDER BY seq ASC (see internal/query)
//   - Run listings order by seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Digests are computed by step.Digest using RFC 8785 canonical JSON and
// SHA-256 with domain separation.
package store

// Package bench measures wall-clock cost of the sorting engines.
//
// A Runner drains each selected engine over generated inputs without
// looking at the steps, which is the cheapest way to execute a run.
// For every size one input is generated and shared by all algorithms so
// their timings are comparable. Each algorithm runs Config.Runs times on a
// fresh copy.
//
// Time is read only through the Clock interface. Production code uses the
// real clock; tests inject testutil.FakeClock and get exact durations.
//
// Input generation is deterministic: the same Config (including Seed)
// produces the same inputs, step counts and metrics on every machine. Only
// durations vary with the clock.
package bench

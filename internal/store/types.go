package store

import (
	"github.com/roach88/sortstep/internal/step"
)

// Run is the stored header of one recorded run.
type Run struct {
	ID        string       `json:"id"`
	Algorithm string       `json:"algorithm"`
	Input     []int        `json:"input"`
	Final     []int        `json:"final"`
	Metrics   step.Metrics `json:"metrics"`
	StepCount int          `json:"step_count"`
	Digest    string       `json:"digest"`
	Seq       int64        `json:"seq"`
}

// StoredStep is a step together with its position in the run.
type StoredStep struct {
	Seq  int64          `json:"seq"`
	Step step.Step[int] `json:"step"`
}

// BenchRecord is one stored benchmark measurement.
type BenchRecord struct {
	BenchID   string       `json:"bench_id"`
	Algorithm string       `json:"algorithm"`
	Size      int          `json:"size"`
	Pattern   string       `json:"pattern"`
	Seed      uint64       `json:"seed"`
	Runs      int          `json:"runs"`
	AverageNS int64        `json:"average_ns"`
	MinNS     int64        `json:"min_ns"`
	MaxNS     int64        `json:"max_ns"`
	Metrics   step.Metrics `json:"metrics"`
}

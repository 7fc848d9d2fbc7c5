package harness

import (
	"github.com/roach88/sortstep/internal/step"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if core properties, expectations and assertions all hold.
	Pass bool `json:"pass"`

	Algorithm string `json:"algorithm"`
	Input     []int  `json:"input"`

	// Final is the array produced by replaying Steps onto Input.
	Final []int `json:"final"`

	// Steps is the full emitted sequence, Done included.
	Steps   []step.Step[int] `json:"steps"`
	Metrics step.Metrics     `json:"metrics"`

	// RunID and Digest identify the run in the scenario's store.
	RunID  string `json:"run_id"`
	Digest string `json:"digest"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []step.Step[int]{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

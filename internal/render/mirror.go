package render

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/sortstep/internal/step"
)

// Role is the colour role of highlighted bars.
type Role int

const (
	RoleNormal Role = iota
	RoleCompare
	RoleSwap
	RoleOverwrite
)

// Bar colours.
var (
	ColorNormal    = lipgloss.Color("#4A90E2")
	ColorCompare   = lipgloss.Color("#FF5733")
	ColorSwap      = lipgloss.Color("#28A745")
	ColorOverwrite = lipgloss.Color("#FFC300")
)

// Color returns the bar colour for the role.
func (r Role) Color() lipgloss.Color {
	switch r {
	case RoleCompare:
		return ColorCompare
	case RoleSwap:
		return ColorSwap
	case RoleOverwrite:
		return ColorOverwrite
	default:
		return ColorNormal
	}
}

// Status is the lifecycle state shown in the statistics panel.
type Status int

const (
	StatusReady Status = iota
	StatusRunning
	StatusPaused
	StatusCompleted
)

var statusNames = [...]string{
	StatusReady:     "Ready",
	StatusRunning:   "Running",
	StatusPaused:    "Paused",
	StatusCompleted: "Completed",
}

func (s Status) String() string {
	if s < StatusReady || s > StatusCompleted {
		return "Unknown"
	}
	return statusNames[s]
}

// Effect is what one applied step does to the picture.
type Effect struct {
	Role        Role
	Highlight   []int
	Description string
	// Skipped is set when the step named a position outside the array.
	// Counters still advance; the array and highlight are left alone.
	Skipped bool
}

// Mirror is a consumer-maintained copy of the array being sorted.
// It is not safe for concurrent use.
type Mirror struct {
	values  []int
	max     int
	metrics step.Metrics
	steps   int
	skipped int
	status  Status
	last    Effect
}

// NewMirror copies values into a fresh mirror in the Ready state.
func NewMirror(values []int) *Mirror {
	m := &Mirror{values: slices.Clone(values)}
	if len(values) > 0 {
		m.max = slices.Max(values)
	}
	return m
}

// Apply updates the mirror with one step and returns its effect.
// A Done step moves the mirror to Completed.
func (m *Mirror) Apply(s step.Step[int]) Effect {
	m.steps++
	m.metrics.Record(s.Kind)

	eff := Effect{Role: RoleNormal, Description: s.Description}
	switch s.Kind {
	case step.KindCompare:
		if m.inBounds(s.I, s.J) {
			eff.Role = RoleCompare
			eff.Highlight = []int{s.I, s.J}
		} else {
			eff.Skipped = true
		}
	case step.KindSwap:
		if m.inBounds(s.I, s.J) {
			m.values[s.I], m.values[s.J] = m.values[s.J], m.values[s.I]
			eff.Role = RoleSwap
			eff.Highlight = []int{s.I, s.J}
		} else {
			eff.Skipped = true
		}
	case step.KindOverwrite:
		if m.inBounds(s.I) {
			m.values[s.I] = s.Value
			m.max = max(m.max, s.Value)
			eff.Role = RoleOverwrite
			eff.Highlight = []int{s.I}
		} else {
			eff.Skipped = true
		}
	case step.KindDone:
		m.status = StatusCompleted
	}

	if eff.Skipped {
		m.skipped++
	}
	m.last = eff
	return eff
}

func (m *Mirror) inBounds(idx ...int) bool {
	for _, i := range idx {
		if i < 0 || i >= len(m.values) {
			return false
		}
	}
	return true
}

// Values returns a copy of the mirrored array.
func (m *Mirror) Values() []int { return slices.Clone(m.values) }

// Len returns the array length.
func (m *Mirror) Len() int { return len(m.values) }

// Max returns the largest value seen, used to scale bars.
func (m *Mirror) Max() int { return m.max }

// Metrics returns the counters accumulated from applied steps.
func (m *Mirror) Metrics() step.Metrics { return m.metrics }

// Steps returns how many steps have been applied.
func (m *Mirror) Steps() int { return m.steps }

// Skipped returns how many steps named out-of-range positions.
func (m *Mirror) Skipped() int { return m.skipped }

// Status returns the lifecycle state.
func (m *Mirror) Status() Status { return m.status }

// SetStatus changes the lifecycle state. Completed is final.
func (m *Mirror) SetStatus(s Status) {
	if m.status == StatusCompleted {
		return
	}
	m.status = s
}

// Last returns the effect of the most recent step.
func (m *Mirror) Last() Effect { return m.last }

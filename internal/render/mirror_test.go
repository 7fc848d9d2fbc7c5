package render

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/step"
)

func TestMirror_Apply(t *testing.T) {
	tests := []struct {
		name      string
		step      step.Step[int]
		wantRole  Role
		wantHigh  []int
		wantArr   []int
		wantCount step.Metrics
	}{
		{
			name:      "compare highlights without moving",
			step:      step.Compare[int](0, 2, "Comparing arr[0] with arr[2]"),
			wantRole:  RoleCompare,
			wantHigh:  []int{0, 2},
			wantArr:   []int{30, 10, 20},
			wantCount: step.Metrics{Comparisons: 1},
		},
		{
			name:      "swap exchanges",
			step:      step.Swap[int](0, 1, "Swapped arr[0] and arr[1]"),
			wantRole:  RoleSwap,
			wantHigh:  []int{0, 1},
			wantArr:   []int{10, 30, 20},
			wantCount: step.Metrics{Swaps: 1},
		},
		{
			name:      "overwrite writes the value",
			step:      step.Overwrite(2, 5, "Inserted 5 at position 2"),
			wantRole:  RoleOverwrite,
			wantHigh:  []int{2},
			wantArr:   []int{30, 10, 5},
			wantCount: step.Metrics{Writes: 1},
		},
		{
			name:     "complete clears the highlight",
			step:     step.Complete[int]("Array is sorted - early exit"),
			wantRole: RoleNormal,
			wantArr:  []int{30, 10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMirror([]int{30, 10, 20})
			eff := m.Apply(tt.step)

			assert.Equal(t, tt.wantRole, eff.Role)
			assert.Equal(t, tt.wantHigh, eff.Highlight)
			assert.Equal(t, tt.step.Description, eff.Description)
			assert.False(t, eff.Skipped)
			assert.Equal(t, tt.wantArr, m.Values())
			assert.Equal(t, tt.wantCount, m.Metrics())
			assert.Equal(t, 1, m.Steps())
			assert.Equal(t, eff, m.Last())
			assert.Equal(t, StatusReady, m.Status())
		})
	}
}

func TestMirror_OutOfBoundsIsSkipped(t *testing.T) {
	m := NewMirror([]int{3, 1, 2})

	bad := []step.Step[int]{
		step.Compare[int](0, 9, ""),
		step.Swap[int](-1, 0, ""),
		step.Overwrite(3, 7, ""),
	}
	for _, s := range bad {
		eff := m.Apply(s)
		assert.True(t, eff.Skipped, "%v", s)
		assert.Nil(t, eff.Highlight)
	}

	assert.Equal(t, []int{3, 1, 2}, m.Values())
	assert.Equal(t, 3, m.Skipped())
	assert.Equal(t, 3, m.Steps())
	assert.Equal(t, step.Metrics{Comparisons: 1, Swaps: 1, Writes: 1}, m.Metrics())
	assert.Equal(t, 3, m.Max(), "skipped overwrite must not rescale")
}

func TestMirror_OverwriteRaisesMax(t *testing.T) {
	m := NewMirror([]int{3, 1, 2})
	m.Apply(step.Overwrite(0, 50, ""))
	assert.Equal(t, 50, m.Max())
}

func TestMirror_DoneCompletes(t *testing.T) {
	m := NewMirror([]int{1})
	m.SetStatus(StatusRunning)
	m.Apply(step.Done[int]("Bubble Sort Complete | Comparisons: 0 | Swaps: 0"))

	assert.Equal(t, StatusCompleted, m.Status())
	m.SetStatus(StatusRunning)
	assert.Equal(t, StatusCompleted, m.Status(), "completed is final")
}

func TestMirror_FollowsEveryEngine(t *testing.T) {
	input := []int{42, 7, 380, 5, 99, 7, 150, 61, 5, 200}
	for _, alg := range engine.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			r, err := engine.Start(alg, input)
			require.NoError(t, err)

			m := NewMirror(input)
			for s := range r.All() {
				eff := m.Apply(s)
				require.False(t, eff.Skipped, "%v", s)
				require.Equal(t, r.Snapshot(), m.Values(), "after %v", s)
			}

			assert.True(t, slices.IsSorted(m.Values()))
			assert.Equal(t, r.Metrics(), m.Metrics())
			assert.Equal(t, r.Emitted(), m.Steps())
			assert.Equal(t, StatusCompleted, m.Status())
		})
	}
}

func TestMirror_ValuesIsCopy(t *testing.T) {
	input := []int{2, 1}
	m := NewMirror(input)
	input[0] = 99
	got := m.Values()
	got[1] = 99
	assert.Equal(t, []int{2, 1}, m.Values())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Ready", StatusReady.String())
	assert.Equal(t, "Running", StatusRunning.String())
	assert.Equal(t, "Paused", StatusPaused.String())
	assert.Equal(t, "Completed", StatusCompleted.String())
	assert.Equal(t, "Unknown", Status(9).String())
}

func TestRole_Color(t *testing.T) {
	assert.Equal(t, ColorCompare, RoleCompare.Color())
	assert.Equal(t, ColorSwap, RoleSwap.Color())
	assert.Equal(t, ColorOverwrite, RoleOverwrite.Color())
	assert.Equal(t, ColorNormal, RoleNormal.Color())
	assert.EqualValues(t, "#FF5733", ColorCompare)
	assert.EqualValues(t, "#4A90E2", ColorNormal)
}

package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Mutations(t *testing.T) {
	arr := []int{3, 1, 2}

	require.NoError(t, Apply(arr, Swap[int](0, 1, "")))
	assert.Equal(t, []int{1, 3, 2}, arr)

	require.NoError(t, Apply(arr, Overwrite(2, 9, "")))
	assert.Equal(t, []int{1, 3, 9}, arr)

	require.NoError(t, Apply(arr, Compare[int](0, 2, "")))
	require.NoError(t, Apply(arr, Complete[int]("")))
	require.NoError(t, Apply(arr, Done[int]("")))
	assert.Equal(t, []int{1, 3, 9}, arr, "non-mutating kinds leave the array alone")
}

func TestApply_BoundsChecked(t *testing.T) {
	tests := []struct {
		name string
		step Step[int]
	}{
		{"swap high", Swap[int](0, 5, "")},
		{"swap negative", Swap[int](-1, 0, "")},
		{"overwrite high", Overwrite(3, 1, "")},
		{"compare high", Compare[int](2, 3, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := []int{1, 2, 3}
			err := Apply(arr, tt.step)
			require.Error(t, err)
			assert.True(t, IsBoundsError(err))
			assert.Equal(t, []int{1, 2, 3}, arr, "failed apply must not mutate")
		})
	}
}

func TestApply_UnknownKind(t *testing.T) {
	err := Apply([]int{1}, Step[int]{Kind: Kind(42)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestReplay_DoesNotMutateInput(t *testing.T) {
	input := []int{2, 1}
	out, err := Replay(input, []Step[int]{Compare[int](0, 1, ""), Swap[int](0, 1, ""), Done[int]("")})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)
	assert.Equal(t, []int{2, 1}, input)
}

func TestReplay_ReportsFailingStep(t *testing.T) {
	_, err := Replay([]int{1, 2}, []Step[int]{Swap[int](0, 1, ""), Swap[int](0, 7, "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
	assert.True(t, IsBoundsError(err))
}

package bench

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		pattern Pattern
		check   func(t *testing.T, out []int)
	}{
		{PatternRandom, func(t *testing.T, out []int) {
			for _, v := range out {
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, len(out))
			}
		}},
		{PatternSorted, func(t *testing.T, out []int) {
			assert.True(t, slices.IsSorted(out))
		}},
		{PatternReversed, func(t *testing.T, out []int) {
			assert.Equal(t, len(out)-1, out[0])
			assert.Equal(t, 0, out[len(out)-1])
		}},
		{PatternNearlySorted, func(t *testing.T, out []int) {
			sorted := slices.Clone(out)
			slices.Sort(sorted)
			want := make([]int, len(out))
			for i := range want {
				want[i] = i
			}
			assert.Equal(t, want, sorted, "a permutation of 0..n-1")

			displaced := 0
			for i, v := range out {
				if v != i {
					displaced++
				}
			}
			assert.LessOrEqual(t, displaced, 2*max(1, len(out)/20))
		}},
		{PatternFewUnique, func(t *testing.T, out []int) {
			seen := map[int]bool{}
			for _, v := range out {
				seen[v] = true
			}
			assert.LessOrEqual(t, len(seen), 5)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			out, err := Generate(tt.pattern, 100, NewRand(42))
			require.NoError(t, err)
			require.Len(t, out, 100)
			tt.check(t, out)
		})
	}
}

func TestGenerate_DeterministicFromSeed(t *testing.T) {
	for _, p := range Patterns() {
		a, err := Generate(p, 50, NewRand(7))
		require.NoError(t, err)
		b, err := Generate(p, 50, NewRand(7))
		require.NoError(t, err)
		assert.Equal(t, a, b, string(p))
	}
}

func TestGenerate_EdgeSizes(t *testing.T) {
	for _, p := range Patterns() {
		out, err := Generate(p, 0, NewRand(1))
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = Generate(p, 1, NewRand(1))
		require.NoError(t, err)
		assert.Len(t, out, 1)
	}
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("nearly_sorted")
	require.NoError(t, err)
	assert.Equal(t, PatternNearlySorted, p)

	_, err = ParsePattern("zigzag")
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Generate(Pattern("zigzag"), 3, NewRand(1))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

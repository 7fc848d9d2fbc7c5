package bench

import (
	"fmt"
	"math/rand/v2"
)

// Pattern names an input shape.
type Pattern string

const (
	// PatternRandom draws each value uniformly from [0, n].
	PatternRandom Pattern = "random"
	// PatternSorted is 0..n-1 ascending.
	PatternSorted Pattern = "sorted"
	// PatternReversed is n-1..0.
	PatternReversed Pattern = "reversed"
	// PatternNearlySorted is ascending with about 5% of positions swapped.
	PatternNearlySorted Pattern = "nearly_sorted"
	// PatternFewUnique draws values from a five-element set.
	PatternFewUnique Pattern = "few_unique"
)

var patterns = []Pattern{
	PatternRandom,
	PatternSorted,
	PatternReversed,
	PatternNearlySorted,
	PatternFewUnique,
}

// Patterns returns every supported pattern.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}

// ParsePattern validates a pattern name.
func ParsePattern(name string) (Pattern, error) {
	for _, p := range patterns {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown pattern %q", ErrInvalidConfig, name)
}

// NewRand returns the generator every benchmark derives its inputs from.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds an input of length n in the given shape.
func Generate(p Pattern, n int, rng *rand.Rand) ([]int, error) {
	out := make([]int, n)
	switch p {
	case PatternRandom:
		for i := range out {
			out[i] = rng.IntN(n + 1)
		}
	case PatternSorted:
		for i := range out {
			out[i] = i
		}
	case PatternReversed:
		for i := range out {
			out[i] = n - 1 - i
		}
	case PatternNearlySorted:
		for i := range out {
			out[i] = i
		}
		if n > 1 {
			swaps := max(1, n/20)
			for range swaps {
				a, b := rng.IntN(n), rng.IntN(n)
				out[a], out[b] = out[b], out[a]
			}
		}
	case PatternFewUnique:
		for i := range out {
			out[i] = rng.IntN(5)
		}
	default:
		return nil, fmt.Errorf("%w: unknown pattern %q", ErrInvalidConfig, p)
	}
	return out, nil
}

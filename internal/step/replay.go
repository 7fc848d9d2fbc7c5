package step

import (
	"errors"
	"fmt"
)

// BoundsError reports a positional step that does not fit the array it is
// applied to. Consumers mirroring an engine's array use it to skip a step
// instead of crashing.
type BoundsError struct {
	Kind  Kind
	Index int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Kind, e.Index, e.Len)
}

// IsBoundsError returns true if err wraps a *BoundsError.
func IsBoundsError(err error) bool {
	var be *BoundsError
	return errors.As(err, &be)
}

// Apply replays one step onto arr.
//
// Swap and Overwrite mutate arr; every other kind is a no-op. Indices are
// checked against len(arr) before any mutation, so a failed Apply leaves
// arr untouched.
func Apply[T any](arr []T, s Step[T]) error {
	switch s.Kind {
	case KindSwap:
		if err := checkIndex(s.Kind, s.I, len(arr)); err != nil {
			return err
		}
		if err := checkIndex(s.Kind, s.J, len(arr)); err != nil {
			return err
		}
		arr[s.I], arr[s.J] = arr[s.J], arr[s.I]
	case KindOverwrite:
		if err := checkIndex(s.Kind, s.I, len(arr)); err != nil {
			return err
		}
		arr[s.I] = s.Value
	case KindCompare:
		if err := checkIndex(s.Kind, s.I, len(arr)); err != nil {
			return err
		}
		return checkIndex(s.Kind, s.J, len(arr))
	case KindComplete, KindDone:
	default:
		return fmt.Errorf("apply: %w: %d", ErrUnknownKind, int(s.Kind))
	}
	return nil
}

// Replay applies steps in order onto a copy of input and returns the copy.
// The input slice is never modified.
func Replay[T any](input []T, steps []Step[T]) ([]T, error) {
	arr := make([]T, len(input))
	copy(arr, input)
	for n, s := range steps {
		if err := Apply(arr, s); err != nil {
			return arr, fmt.Errorf("step %d: %w", n, err)
		}
	}
	return arr, nil
}

func checkIndex(kind Kind, idx, n int) error {
	if idx < 0 || idx >= n {
		return &BoundsError{Kind: kind, Index: idx, Len: n}
	}
	return nil
}

package step

import (
	"errors"
	"fmt"
)

// Kind identifies the operation a Step describes.
type Kind int

const (
	// KindCompare reports that elements I and J were compared.
	KindCompare Kind = iota + 1
	// KindSwap reports that elements I and J were exchanged.
	KindSwap
	// KindOverwrite reports that Value was written at position I.
	KindOverwrite
	// KindComplete marks an early exit: the array is already sorted.
	KindComplete
	// KindDone is the terminal summary step. Exactly one ends every run.
	KindDone
)

// NoIndex is the sentinel for positional fields that carry no meaning.
const NoIndex = -1

// ErrUnknownKind is returned by ParseKind for names outside the closed set.
var ErrUnknownKind = errors.New("unknown step kind")

var kindNames = [...]string{
	KindCompare:   "compare",
	KindSwap:      "swap",
	KindOverwrite: "overwrite",
	KindComplete:  "complete",
	KindDone:      "done",
}

// String returns the lower-case wire name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k belongs to the closed kind set.
func (k Kind) Valid() bool {
	return k >= KindCompare && k <= KindDone
}

// Positional reports whether steps of this kind carry meaningful indices.
func (k Kind) Positional() bool {
	return k == KindCompare || k == KindSwap || k == KindOverwrite
}

// ParseKind converts a wire name back into a Kind.
func ParseKind(name string) (Kind, error) {
	for k := KindCompare; k <= KindDone; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds returns the closed kind set in declaration order.
func Kinds() []Kind {
	return []Kind{KindCompare, KindSwap, KindOverwrite, KindComplete, KindDone}
}

// Step is one atomic operation emitted by an engine.
//
// Field meaning depends on Kind:
//   - Compare, Swap: I and J are valid indices into the working array
//   - Overwrite: I is the written position, Value the written element, J is NoIndex
//   - Complete, Done: I and J are NoIndex
//
// Description is informational only and never consumed programmatically.
type Step[T any] struct {
	Kind        Kind
	I           int
	J           int
	Value       T
	Description string
}

// Compare builds a comparison step between positions i and j.
func Compare[T any](i, j int, description string) Step[T] {
	return Step[T]{Kind: KindCompare, I: i, J: j, Description: description}
}

// Swap builds a swap step between positions i and j.
func Swap[T any](i, j int, description string) Step[T] {
	return Step[T]{Kind: KindSwap, I: i, J: j, Description: description}
}

// Overwrite builds a positional write of value at position i.
func Overwrite[T any](i int, value T, description string) Step[T] {
	return Step[T]{Kind: KindOverwrite, I: i, J: NoIndex, Value: value, Description: description}
}

// Complete builds the early-exit marker.
func Complete[T any](description string) Step[T] {
	return Step[T]{Kind: KindComplete, I: NoIndex, J: NoIndex, Description: description}
}

// Done builds the terminal summary step.
func Done[T any](description string) Step[T] {
	return Step[T]{Kind: KindDone, I: NoIndex, J: NoIndex, Description: description}
}

// String renders the step for logs and text output.
func (s Step[T]) String() string {
	switch s.Kind {
	case KindCompare, KindSwap:
		return fmt.Sprintf("%s(%d, %d)", s.Kind, s.I, s.J)
	case KindOverwrite:
		return fmt.Sprintf("%s(%d, %v)", s.Kind, s.I, s.Value)
	default:
		return s.Kind.String()
	}
}

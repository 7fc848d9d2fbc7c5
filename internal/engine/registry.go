package engine

import (
	"fmt"
	"slices"
)

// Algorithm enumerates the registered engines. The set is closed; the
// registry table below is indexed by it.
type Algorithm int

const (
	Bubble Algorithm = iota + 1
	Selection
	Insertion
	Merge
	Quick
	Heap
)

// Counter names the mutation counter an engine reports in its Done summary.
type Counter int

const (
	CounterSwaps Counter = iota + 1
	CounterWrites
)

func (c Counter) String() string {
	switch c {
	case CounterSwaps:
		return "swaps"
	case CounterWrites:
		return "writes"
	default:
		return fmt.Sprintf("counter(%d)", int(c))
	}
}

// Entry describes one registered engine.
type Entry struct {
	Algorithm Algorithm
	// Name is the stable display name, e.g. "Merge Sort".
	Name string
	// Key is the short command-line form, e.g. "merge".
	Key string
	// Stable reports whether equal elements keep their relative order.
	Stable bool
	// Best, Average and Worst are time complexities for listings.
	Best, Average, Worst string
	// Reports is the mutation counter named in the Done summary.
	Reports Counter
}

var registry = [...]Entry{
	Bubble:    {Bubble, "Bubble Sort", "bubble", true, "O(n)", "O(n²)", "O(n²)", CounterSwaps},
	Selection: {Selection, "Selection Sort", "selection", false, "O(n²)", "O(n²)", "O(n²)", CounterSwaps},
	Insertion: {Insertion, "Insertion Sort", "insertion", true, "O(n)", "O(n²)", "O(n²)", CounterWrites},
	Merge:     {Merge, "Merge Sort", "merge", true, "O(n log n)", "O(n log n)", "O(n log n)", CounterWrites},
	Quick:     {Quick, "Quick Sort", "quick", false, "O(n log n)", "O(n log n)", "O(n²)", CounterSwaps},
	Heap:      {Heap, "Heap Sort", "heap", false, "O(n log n)", "O(n log n)", "O(n log n)", CounterSwaps},
}

// Valid reports whether a is a registered algorithm.
func (a Algorithm) Valid() bool {
	return a >= Bubble && a <= Heap
}

// Entry returns the registry entry for a. It panics for unregistered values,
// which can only come from a conversion outside this package.
func (a Algorithm) Entry() Entry {
	if !a.Valid() {
		panic(fmt.Sprintf("engine: unregistered algorithm %d", int(a)))
	}
	return registry[a]
}

// String returns the display name.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
	return registry[a].Name
}

// Lookup resolves a display name ("Quick Sort") or key ("quick").
// Matching is exact; an unknown name is an error, never a default.
func Lookup(name string) (Algorithm, error) {
	for _, e := range registry[Bubble:] {
		if e.Name == name || e.Key == name {
			return e.Algorithm, nil
		}
	}
	return 0, NewUnknownAlgorithmError(name)
}

// MustLookup is like Lookup but panics on error.
// Use only with names known at compile time.
func MustLookup(name string) Algorithm {
	alg, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return alg
}

// Algorithms returns every registered algorithm in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(registry)-1)
	for _, e := range registry[Bubble:] {
		out = append(out, e.Algorithm)
	}
	return out
}

// Entries returns a copy of every registry entry in declaration order.
func Entries() []Entry {
	return slices.Clone(registry[Bubble:])
}

// Names returns every display name in declaration order.
func Names() []string {
	out := make([]string, 0, len(registry)-1)
	for _, e := range registry[Bubble:] {
		out = append(out, e.Name)
	}
	return out
}

package step

// Metrics accumulates per-run operation counts.
//
// Counters are monotonic. Each emitted Compare, Swap or Overwrite step
// increments exactly its own counter; Complete and Done increment nothing.
type Metrics struct {
	Comparisons int64 `json:"comparisons"`
	Swaps       int64 `json:"swaps"`
	Writes      int64 `json:"writes"`
}

// Record increments the counter matching kind.
func (m *Metrics) Record(kind Kind) {
	switch kind {
	case KindCompare:
		m.Comparisons++
	case KindSwap:
		m.Swaps++
	case KindOverwrite:
		m.Writes++
	}
}

// Total returns comparisons + swaps + writes.
func (m Metrics) Total() int64 {
	return m.Comparisons + m.Swaps + m.Writes
}

// Tally counts the steps of a sequence.
func Tally[T any](steps []Step[T]) Metrics {
	var m Metrics
	for _, s := range steps {
		m.Record(s.Kind)
	}
	return m
}

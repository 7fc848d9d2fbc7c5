package engine

import (
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

// insertionMachine: for each i from 1, the element at i is held as key
// while larger elements to its left shift one slot right. The key is then
// written to its resting slot, even when nothing shifted, so every pass
// ends with exactly one placement write.
type insertionMachine[T any] struct {
	n, i, j  int
	key      T
	inPass   bool
	compared bool
}

func (m *insertionMachine[T]) advance(r *Run[T]) (step.Step[T], bool) {
	if !m.inPass {
		if m.i >= m.n {
			return step.Step[T]{}, false
		}
		m.inPass = true
		m.key = r.arr[m.i]
		m.j = m.i - 1
	}

	if m.j >= 0 {
		if !m.compared {
			m.compared = true
			return step.Compare[T](m.j, m.i, fmt.Sprintf("Comparing arr[%d] with arr[%d]", m.j, m.i)), true
		}
		m.compared = false
		if r.cmp(r.arr[m.j], m.key) > 0 {
			j := m.j
			r.arr[j+1] = r.arr[j]
			m.j--
			return step.Overwrite(j+1, r.arr[j], fmt.Sprintf("Shifted arr[%d] to arr[%d]", j, j+1)), true
		}
	}

	pos := m.j + 1
	r.arr[pos] = m.key
	m.inPass = false
	m.i++
	return step.Overwrite(pos, m.key, fmt.Sprintf("Inserted %v at position %d", m.key, pos)), true
}

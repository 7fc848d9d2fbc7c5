package engine

import (
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

// selectionMachine: pass i scans j = i+1..n-1, comparing the running
// minimum (not i) against each candidate, then swaps the minimum into i
// only if it moved.
type selectionMachine[T any] struct {
	n, i, j  int
	minIdx   int
	inPass   bool
	compared bool
}

func (s *selectionMachine[T]) advance(r *Run[T]) (step.Step[T], bool) {
	for s.i < s.n {
		if !s.inPass {
			s.inPass = true
			s.minIdx = s.i
			s.j = s.i + 1
		}

		if s.j < s.n {
			if !s.compared {
				s.compared = true
				return step.Compare[T](s.minIdx, s.j, fmt.Sprintf("Comparing arr[%d] with arr[%d]", s.minIdx, s.j)), true
			}
			s.compared = false
			if r.order(s.j, s.minIdx) < 0 {
				s.minIdx = s.j
			}
			s.j++
			continue
		}

		i := s.i
		s.i++
		s.inPass = false
		if s.minIdx != i {
			r.swap(i, s.minIdx)
			return step.Swap[T](i, s.minIdx, fmt.Sprintf("Swapped arr[%d] and arr[%d]", i, s.minIdx)), true
		}
	}
	return step.Step[T]{}, false
}

package engine

import (
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

// span is an inclusive subrange awaiting partition.
type span struct{ l, r int }

// quickMachine is Lomuto quicksort with the last element of each range as
// pivot. Pending ranges live on an explicit stack; the right partition is
// pushed before the left so the left is sorted first.
//
// Every element moved below the pivot threshold emits a Swap, including
// swaps of an element with itself, and the pivot placement always emits a
// Swap. There is no pivot-selection mitigation: sorted input is O(n²).
type quickMachine[T any] struct {
	stack []span

	// Active partition of [l, r]; i is the last slot known < pivot.
	active   bool
	l, r     int
	i, j     int
	compared bool
}

func newQuickMachine[T any](n int) *quickMachine[T] {
	qm := &quickMachine[T]{}
	if n > 0 {
		qm.stack = append(qm.stack, span{0, n - 1})
	}
	return qm
}

func (qm *quickMachine[T]) advance(r *Run[T]) (step.Step[T], bool) {
	for {
		if qm.active {
			// The pivot stays at qm.r for the whole scan: swaps only touch
			// positions up to j, and j < r.
			if qm.j < qm.r {
				j := qm.j
				if !qm.compared {
					qm.compared = true
					return step.Compare[T](j, qm.r, fmt.Sprintf("Comparing arr[%d] with pivot %v", j, r.arr[qm.r])), true
				}
				qm.compared = false
				qm.j++
				if r.order(j, qm.r) < 0 {
					qm.i++
					r.swap(qm.i, j)
					return step.Swap[T](qm.i, j, fmt.Sprintf("Swapped arr[%d] and arr[%d]", qm.i, j)), true
				}
				continue
			}

			p := qm.i + 1
			pivot := r.arr[qm.r]
			r.swap(p, qm.r)
			qm.active = false
			qm.stack = append(qm.stack, span{p + 1, qm.r}, span{qm.l, p - 1})
			return step.Swap[T](p, qm.r, fmt.Sprintf("Placed pivot %v at position %d", pivot, p)), true
		}

		if len(qm.stack) == 0 {
			return step.Step[T]{}, false
		}
		s := qm.stack[len(qm.stack)-1]
		qm.stack = qm.stack[:len(qm.stack)-1]
		if s.l < s.r {
			qm.active = true
			qm.l, qm.r = s.l, s.r
			qm.i, qm.j = s.l-1, s.l
		}
	}
}

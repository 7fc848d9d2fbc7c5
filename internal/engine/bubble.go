package engine

import (
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

// bubbleMachine: pass i compares every adjacent pair j, j+1 for
// j < n-i-1 and swaps when left > right. A pass without swaps emits
// Complete and ends the sort. Equal neighbours never swap.
type bubbleMachine[T any] struct {
	n, i, j  int
	swapped  bool
	compared bool
	finished bool
}

func (b *bubbleMachine[T]) advance(r *Run[T]) (step.Step[T], bool) {
	for !b.finished {
		if b.i >= b.n {
			b.finished = true
			break
		}

		if b.j < b.n-b.i-1 {
			j := b.j
			if !b.compared {
				b.compared = true
				return step.Compare[T](j, j+1, fmt.Sprintf("Comparing arr[%d] with arr[%d]", j, j+1)), true
			}
			b.compared = false
			b.j++
			if r.order(j, j+1) > 0 {
				r.swap(j, j+1)
				b.swapped = true
				return step.Swap[T](j, j+1, fmt.Sprintf("Swapped arr[%d] and arr[%d]", j, j+1)), true
			}
			continue
		}

		if !b.swapped {
			b.finished = true
			return step.Complete[T]("Array is sorted - early exit"), true
		}
		b.i++
		b.j = 0
		b.swapped = false
	}
	return step.Step[T]{}, false
}

package engine

import (
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

// mergeTask is one pending unit on the merge sort work-list: either sort
// [l, r] or merge the sorted halves [l, m] and [m+1, r].
type mergeTask struct {
	l, m, r int
	merge   bool
}

// mergeMachine is top-down merge sort with the recursion replaced by an
// explicit stack. Pushing merge, right, left (in that order) pops them as
// left, right, merge, which is the recursive completion order.
//
// Before a merge starts, aux[l..r] is refreshed from the working array.
// The merge reads only aux and writes only arr, so positions it overwrites
// never feed a later comparison of the same merge.
type mergeMachine[T any] struct {
	aux   []T
	stack []mergeTask

	// Cursors of the active merge.
	active   bool
	i, j, k  int
	m, r     int
	compared bool
}

func newMergeMachine[T any](n int) *mergeMachine[T] {
	mm := &mergeMachine[T]{aux: make([]T, n)}
	if n > 0 {
		mm.stack = append(mm.stack, mergeTask{l: 0, r: n - 1})
	}
	return mm
}

func (mm *mergeMachine[T]) advance(r *Run[T]) (step.Step[T], bool) {
	for {
		if mm.active {
			if s, ok := mm.mergeStep(r); ok {
				return s, true
			}
			mm.active = false
			continue
		}

		if len(mm.stack) == 0 {
			return step.Step[T]{}, false
		}
		t := mm.stack[len(mm.stack)-1]
		mm.stack = mm.stack[:len(mm.stack)-1]

		if t.merge {
			copy(mm.aux[t.l:t.r+1], r.arr[t.l:t.r+1])
			mm.active = true
			mm.i, mm.j, mm.k = t.l, t.m+1, t.l
			mm.m, mm.r = t.m, t.r
			continue
		}
		if t.l >= t.r {
			continue
		}
		mid := (t.l + t.r) / 2
		mm.stack = append(mm.stack,
			mergeTask{l: t.l, m: mid, r: t.r, merge: true},
			mergeTask{l: mid + 1, r: t.r},
			mergeTask{l: t.l, r: mid},
		)
	}
}

// mergeStep advances the active merge by one step. Ties take the left run,
// which keeps the sort stable.
func (mm *mergeMachine[T]) mergeStep(r *Run[T]) (step.Step[T], bool) {
	k := mm.k
	switch {
	case mm.i <= mm.m && mm.j <= mm.r:
		if !mm.compared {
			mm.compared = true
			return step.Compare[T](mm.i, mm.j, fmt.Sprintf("Comparing arr[%d] with arr[%d]", mm.i, mm.j)), true
		}
		mm.compared = false
		mm.k++
		if r.cmp(mm.aux[mm.i], mm.aux[mm.j]) <= 0 {
			src := mm.i
			r.arr[k] = mm.aux[src]
			mm.i++
			return step.Overwrite(k, r.arr[k], fmt.Sprintf("Merged arr[%d] to position %d", src, k)), true
		}
		src := mm.j
		r.arr[k] = mm.aux[src]
		mm.j++
		return step.Overwrite(k, r.arr[k], fmt.Sprintf("Merged arr[%d] to position %d", src, k)), true

	case mm.i <= mm.m:
		src := mm.i
		r.arr[k] = mm.aux[src]
		mm.i++
		mm.k++
		return step.Overwrite(k, r.arr[k], fmt.Sprintf("Merged remaining arr[%d] to position %d", src, k)), true

	case mm.j <= mm.r:
		src := mm.j
		r.arr[k] = mm.aux[src]
		mm.j++
		mm.k++
		return step.Overwrite(k, r.arr[k], fmt.Sprintf("Merged remaining arr[%d] to position %d", src, k)), true
	}
	return step.Step[T]{}, false
}

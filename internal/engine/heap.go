package engine

import (
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

type heapPhase int

const (
	heapBuild heapPhase = iota
	heapExtract
	heapFinished
)

type siftStage int

const (
	siftLeft siftStage = iota
	siftRight
	siftSwap
)

// heapMachine is an in-place max-heap sort. The build phase sifts down
// every internal node from n/2-1 to 0; the extract phase swaps the root to
// the end of the shrinking heap and sifts the new root down.
//
// A sift-down compares the left child, then the right child, against the
// current largest candidate, and swaps the node with the winner if it
// changed.
type heapMachine[T any] struct {
	n     int
	phase heapPhase
	next  int

	sifting  bool
	stage    siftStage
	root     int
	size     int
	largest  int
	compared bool
}

func newHeapMachine[T any](n int) *heapMachine[T] {
	return &heapMachine[T]{n: n, phase: heapBuild, next: n/2 - 1}
}

func (h *heapMachine[T]) startSift(root, size int) {
	h.sifting = true
	h.stage = siftLeft
	h.root, h.size, h.largest = root, size, root
}

func (h *heapMachine[T]) advance(r *Run[T]) (step.Step[T], bool) {
	for {
		if h.sifting {
			if s, ok := h.siftStep(r); ok {
				return s, true
			}
			continue
		}

		switch h.phase {
		case heapBuild:
			if h.next >= 0 {
				h.startSift(h.next, h.n)
				h.next--
				continue
			}
			h.phase = heapExtract
			h.next = h.n - 1

		case heapExtract:
			if h.next >= 1 {
				end := h.next
				r.swap(0, end)
				h.next--
				h.startSift(0, end)
				return step.Swap[T](0, end, fmt.Sprintf("Moved max arr[0] to position %d", end)), true
			}
			h.phase = heapFinished

		case heapFinished:
			return step.Step[T]{}, false
		}
	}
}

// siftStep returns ok=false when the active sift-down ends without a step.
func (h *heapMachine[T]) siftStep(r *Run[T]) (step.Step[T], bool) {
	for h.sifting {
		left := 2*h.root + 1
		switch h.stage {
		case siftLeft:
			if left >= h.size {
				h.sifting = false
				break
			}
			if !h.compared {
				h.compared = true
				return step.Compare[T](left, h.largest, fmt.Sprintf("Comparing arr[%d] with arr[%d]", left, h.largest)), true
			}
			h.compared = false
			if r.order(left, h.largest) > 0 {
				h.largest = left
			}
			h.stage = siftRight

		case siftRight:
			right := left + 1
			if right < h.size {
				if !h.compared {
					h.compared = true
					return step.Compare[T](right, h.largest, fmt.Sprintf("Comparing arr[%d] with arr[%d]", right, h.largest)), true
				}
				h.compared = false
				if r.order(right, h.largest) > 0 {
					h.largest = right
				}
			}
			h.stage = siftSwap

		case siftSwap:
			if h.largest == h.root {
				h.sifting = false
				break
			}
			from, to := h.root, h.largest
			r.swap(from, to)
			h.root, h.largest = to, to
			h.stage = siftLeft
			return step.Swap[T](from, to, fmt.Sprintf("Swapped arr[%d] and arr[%d]", from, to)), true
		}
	}
	return step.Step[T]{}, false
}

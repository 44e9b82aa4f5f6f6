package matcher

import "github.com/flashmentor-network/flashmentor/internal/domain"

// ─── Ranking Heap (Max-Heap) ────────────────────────────────────────────────
// Binary max-heap over candidate scores.
//
// Operations:
//   push: O(log n) — sift up
//   pop:  O(log n) — sift down (extract-max)
//
// Tie-break: equal scores dequeue in directory order (lower order
// index first), keeping the ranking deterministic.

// rankItem is an element in the ranking heap.
type rankItem struct {
	expert domain.ExpertProfile
	score  float64
	order  int // position in the directory's candidate list
}

// rankHeap is a single-use heap; the matcher builds one per Rank call,
// so it needs no locking.
type rankHeap struct {
	heap []rankItem
}

// push adds an item. O(log n).
func (h *rankHeap) push(item rankItem) {
	h.heap = append(h.heap, item)
	h.siftUp(len(h.heap) - 1)
}

// pop removes and returns the best-ranked item. O(log n).
// Returns the item and true, or zero-value and false if empty.
func (h *rankHeap) pop() (rankItem, bool) {
	if len(h.heap) == 0 {
		return rankItem{}, false
	}

	top := h.heap[0]
	last := len(h.heap) - 1
	h.heap[0] = h.heap[last]
	h.heap = h.heap[:last]
	if len(h.heap) > 0 {
		h.siftDown(0)
	}
	return top, true
}

// less returns true if item i should be dequeued before item j.
func (h *rankHeap) less(i, j int) bool {
	if h.heap[i].score != h.heap[j].score {
		return h.heap[i].score > h.heap[j].score // higher score first
	}
	return h.heap[i].order < h.heap[j].order // directory order breaks ties
}

// siftUp restores heap property after insertion.
func (h *rankHeap) siftUp(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if h.less(idx, parent) {
			h.heap[idx], h.heap[parent] = h.heap[parent], h.heap[idx]
			idx = parent
		} else {
			break
		}
	}
}

// siftDown restores heap property after extraction.
func (h *rankHeap) siftDown(idx int) {
	n := len(h.heap)
	for {
		best := idx
		left := 2*idx + 1
		right := 2*idx + 2

		if left < n && h.less(left, best) {
			best = left
		}
		if right < n && h.less(right, best) {
			best = right
		}
		if best == idx {
			break
		}
		h.heap[idx], h.heap[best] = h.heap[best], h.heap[idx]
		idx = best
	}
}

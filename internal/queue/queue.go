package queue

import (
	"container/heap"

	"github.com/hupe1980/vectree/model"
)

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue)(nil)

// PriorityQueueItem represents an item in the priority queue.
type PriorityQueueItem struct {
	Index    int     // Dataset position of the candidate.
	Distance float64 // Distance is the priority of the item in the queue.
}

// PriorityQueue implements heap.Interface over PriorityQueueItems stored by
// value.
type PriorityQueue struct {
	isMaxHeap bool
	items     []PriorityQueueItem
}

// NewMin initializes a new priority queue with minimum priority.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{
		isMaxHeap: false,
		items:     make([]PriorityQueueItem, 0, capacity),
	}
}

// NewMax initializes a new priority queue with maximum priority.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{
		isMaxHeap: true,
		items:     make([]PriorityQueueItem, 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Less orders by (distance, index), reversed for a max-heap.
func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.isMaxHeap {
		return before(pq.items[j], pq.items[i])
	}
	return before(pq.items[i], pq.items[j])
}

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

// Push appends x. Use PushItem to keep the heap ordered.
func (pq *PriorityQueue) Push(x any) {
	item, _ := x.(PriorityQueueItem)
	pq.items = append(pq.items, item)
}

// Pop removes the last element. Use PopItem to take the top.
func (pq *PriorityQueue) Pop() any {
	n := len(pq.items)
	item := pq.items[n-1]
	pq.items = pq.items[:n-1]
	return item
}

// TopItem returns the top element of the heap.
func (pq *PriorityQueue) TopItem() (PriorityQueueItem, bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) PushItem(item PriorityQueueItem) {
	heap.Push(pq, item)
}

// PopItem removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue) PopItem() (PriorityQueueItem, bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}, false
	}
	item, _ := heap.Pop(pq).(PriorityQueueItem)
	return item, true
}

// TryPushBounded keeps at most k items in a max-heap: the item is pushed while
// fewer than k are held, otherwise it replaces the top if it orders before it
// (closer, or equally close with a lower index). Returns whether the item was
// kept.
func (pq *PriorityQueue) TryPushBounded(item PriorityQueueItem, k int) bool {
	if len(pq.items) < k {
		heap.Push(pq, item)
		return true
	}
	if len(pq.items) == 0 || !before(item, pq.items[0]) {
		return false
	}
	pq.items[0] = item
	heap.Fix(pq, 0)
	return true
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue) Reset() {
	pq.items = pq.items[:0]
}

// Results drains the queue into SearchResults sorted by ascending distance.
// Ties are broken by ascending index.
func (pq *PriorityQueue) Results() []model.SearchResult {
	out := make([]model.SearchResult, len(pq.items))
	for i := range pq.items {
		out[i] = model.SearchResult{Index: pq.items[i].Index, Distance: pq.items[i].Distance}
	}
	pq.items = pq.items[:0]
	SortResults(out)
	return out
}

// before orders items by distance, then by index.
func before(a, b PriorityQueueItem) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Index < b.Index
}

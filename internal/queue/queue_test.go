package queue

import (
	"container/heap"
	"testing"

	"github.com/hupe1980/vectree/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue(t *testing.T) {
	t.Run("MinHeap", func(t *testing.T) {
		pq := NewMin(4)
		for i, d := range []float64{3, 1, 4, 1.5} {
			pq.PushItem(PriorityQueueItem{Index: i, Distance: d})
		}

		var got []float64
		for pq.Len() > 0 {
			item, ok := pq.PopItem()
			require.True(t, ok)
			got = append(got, item.Distance)
		}
		assert.Equal(t, []float64{1, 1.5, 3, 4}, got)

		_, ok := pq.PopItem()
		assert.False(t, ok)
	})

	t.Run("MaxHeap", func(t *testing.T) {
		pq := NewMax(4)
		for i, d := range []float64{3, 1, 4, 1.5} {
			pq.PushItem(PriorityQueueItem{Index: i, Distance: d})
		}

		top, ok := pq.TopItem()
		require.True(t, ok)
		assert.Equal(t, 4.0, top.Distance)
		assert.Equal(t, 2, top.Index)
	})

	t.Run("HeapInterface", func(t *testing.T) {
		pq := NewMin(4)
		pq.items = append(pq.items,
			PriorityQueueItem{Index: 4, Distance: 2},
			PriorityQueueItem{Index: 1, Distance: 2},
			PriorityQueueItem{Index: 0, Distance: 7},
			PriorityQueueItem{Index: 9, Distance: 0.5},
		)
		heap.Init(pq)

		var got []int
		for pq.Len() > 0 {
			item, _ := heap.Pop(pq).(PriorityQueueItem)
			got = append(got, item.Index)
		}
		assert.Equal(t, []int{9, 1, 4, 0}, got)
	})

	t.Run("Reset", func(t *testing.T) {
		pq := NewMax(2)
		pq.PushItem(PriorityQueueItem{Index: 1, Distance: 1})
		pq.Reset()
		assert.Equal(t, 0, pq.Len())
		_, ok := pq.TopItem()
		assert.False(t, ok)
	})
}

func TestTryPushBounded(t *testing.T) {
	pq := NewMax(3)
	distances := []float64{5, 9, 2, 7, 1, 9, 3}
	for i, d := range distances {
		pq.TryPushBounded(PriorityQueueItem{Index: i, Distance: d}, 3)
		assert.LessOrEqual(t, pq.Len(), 3)
	}

	assert.Equal(t, []model.SearchResult{
		{Index: 4, Distance: 1},
		{Index: 2, Distance: 2},
		{Index: 6, Distance: 3},
	}, pq.Results())
	assert.Equal(t, 0, pq.Len())

	t.Run("EqualDistancePrefersLowerIndex", func(t *testing.T) {
		pq := NewMax(1)
		assert.True(t, pq.TryPushBounded(PriorityQueueItem{Index: 3, Distance: 1}, 1))
		assert.False(t, pq.TryPushBounded(PriorityQueueItem{Index: 5, Distance: 1}, 1))
		top, _ := pq.TopItem()
		assert.Equal(t, 3, top.Index)

		assert.True(t, pq.TryPushBounded(PriorityQueueItem{Index: 1, Distance: 1}, 1))
		top, _ = pq.TopItem()
		assert.Equal(t, 1, top.Index)
	})

	t.Run("ZeroK", func(t *testing.T) {
		pq := NewMax(0)
		assert.False(t, pq.TryPushBounded(PriorityQueueItem{Index: 0, Distance: 1}, 0))
	})
}

func TestSortResults(t *testing.T) {
	rs := []model.SearchResult{{Index: 3, Distance: 1}, {Index: 1, Distance: 1}, {Index: 0, Distance: 0.5}}
	SortResults(rs)
	assert.Equal(t, []model.SearchResult{{Index: 0, Distance: 0.5}, {Index: 1, Distance: 1}, {Index: 3, Distance: 1}}, rs)
}

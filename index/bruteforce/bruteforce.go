// Package bruteforce provides an exact linear-scan nearest-neighbour search.
// It is the baseline tree indexes are measured against.
package bruteforce

import (
	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/internal/queue"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

// Search scans every row and returns the k nearest to q, sorted by
// ascending distance and then by row position. Fewer than k results are
// returned when there are fewer rows.
func Search(rows []vector.Vector, q vector.Vector, k int) ([]model.SearchResult, error) {
	if k <= 0 {
		return nil, index.ErrInvalidK
	}
	if len(rows) == 0 {
		return nil, index.ErrEmptyIndex
	}

	pq := queue.NewMax(k)
	for i, row := range rows {
		d, err := vector.Distance(q, row)
		if err != nil {
			return nil, err
		}
		pq.TryPushBounded(queue.PriorityQueueItem{Index: i, Distance: d}, k)
	}

	return pq.Results(), nil
}

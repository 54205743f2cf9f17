package queue

import (
	"cmp"
	"slices"

	"github.com/hupe1980/vectree/model"
)

// SortResults orders results by ascending distance, then ascending index.
func SortResults(rs []model.SearchResult) {
	slices.SortFunc(rs, func(a, b model.SearchResult) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

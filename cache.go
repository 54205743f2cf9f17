package vectree

import (
	"encoding/binary"
	"math"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

// queryCache memoizes search results per tree generation.
type queryCache struct {
	lru *lru.Cache[string, []model.SearchResult]
}

func newQueryCache(size int) (*queryCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, []model.SearchResult](size)
	if err != nil {
		return nil, err
	}
	return &queryCache{lru: c}, nil
}

// cacheKey encodes generation, k and the exact bits of q.
func cacheKey(gen uint64, k int, q vector.Vector) string {
	buf := make([]byte, 0, 16+8*len(q))
	buf = binary.LittleEndian.AppendUint64(buf, gen)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(k))
	for _, x := range q {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
	}
	return string(buf)
}

func (c *queryCache) get(gen uint64, k int, q vector.Vector) ([]model.SearchResult, bool) {
	if c == nil {
		return nil, false
	}
	res, ok := c.lru.Get(cacheKey(gen, k, q))
	if !ok {
		return nil, false
	}
	return slices.Clone(res), true
}

func (c *queryCache) add(gen uint64, k int, q vector.Vector, res []model.SearchResult) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey(gen, k, q), slices.Clone(res))
}

// purge drops every entry. Entries from older generations can never hit, so
// this only reclaims memory.
func (c *queryCache) purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

func (c *queryCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

package tree

import (
	"errors"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/vectree/internal/queue"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("tree: k must be positive")

	// ErrSourceMismatch is returned when a tree is searched against rows other
	// than the ones it was built over.
	ErrSourceMismatch = errors.New("tree: source size differs from tree size")
)

// Policy selects how the top-k candidate set is maintained during search.
type Policy uint8

const (
	// PolicyMaxHeap keeps the k closest candidates in a bounded max-heap and
	// replaces the current worst when a closer one arrives.
	PolicyMaxHeap Policy = iota
	// PolicyEvictNewest keeps candidates in admission order and, once k are
	// held, replaces the most recently admitted one when a candidate beats the
	// current worst. The evicted index becomes eligible again.
	PolicyEvictNewest
)

func (p Policy) String() string {
	switch p {
	case PolicyMaxHeap:
		return "max-heap"
	case PolicyEvictNewest:
		return "evict-newest"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// ParsePolicy parses the String form of a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "max-heap", "heap":
		return PolicyMaxHeap, nil
	case "evict-newest", "newest":
		return PolicyEvictNewest, nil
	default:
		return 0, fmt.Errorf("tree: unknown result policy %q", s)
	}
}

type collector interface {
	offer(index int, distance float64)
	count() int
	worst() float64
	results() []model.SearchResult
}

type heapCollector struct {
	k    int
	seen *bitset.BitSet
	pq   *queue.PriorityQueue
}

func newHeapCollector(k, n int) *heapCollector {
	return &heapCollector{
		k:    k,
		seen: bitset.New(uint(n)),
		pq:   queue.NewMax(k),
	}
}

func (c *heapCollector) offer(index int, distance float64) {
	if c.seen.Test(uint(index)) {
		return
	}
	c.seen.Set(uint(index))
	c.pq.TryPushBounded(queue.PriorityQueueItem{Index: index, Distance: distance}, c.k)
}

func (c *heapCollector) count() int { return c.pq.Len() }

func (c *heapCollector) worst() float64 {
	if c.pq.Len() < c.k {
		return math.Inf(1)
	}
	top, _ := c.pq.TopItem()
	return top.Distance
}

func (c *heapCollector) results() []model.SearchResult { return c.pq.Results() }

type newestCollector struct {
	k     int
	seen  *bitset.BitSet
	items []model.SearchResult
	max   float64
}

func newNewestCollector(k, n int) *newestCollector {
	return &newestCollector{
		k:     k,
		seen:  bitset.New(uint(n)),
		items: make([]model.SearchResult, 0, k),
	}
}

func (c *newestCollector) offer(index int, distance float64) {
	if c.seen.Test(uint(index)) {
		return
	}
	if len(c.items) < c.k {
		c.items = append(c.items, model.SearchResult{Index: index, Distance: distance})
		c.seen.Set(uint(index))
		c.max = math.Max(c.max, distance)
		return
	}
	if distance >= c.max {
		return
	}

	last := len(c.items) - 1
	c.seen.Clear(uint(c.items[last].Index))
	c.items[last] = model.SearchResult{Index: index, Distance: distance}
	c.seen.Set(uint(index))

	c.max = c.items[0].Distance
	for _, it := range c.items[1:] {
		c.max = math.Max(c.max, it.Distance)
	}
}

func (c *newestCollector) count() int { return len(c.items) }

func (c *newestCollector) worst() float64 {
	if len(c.items) < c.k {
		return math.Inf(1)
	}
	return c.max
}

func (c *newestCollector) results() []model.SearchResult {
	out := make([]model.SearchResult, len(c.items))
	copy(out, c.items)
	queue.SortResults(out)
	return out
}

// Search returns up to k nearest neighbours of q, sorted by ascending
// distance with ties broken by index. The query must have the source's
// dimension; k must be positive. An empty tree returns no results. src must
// be the source the tree was built over.
func Search(t *Tree, src Source, q vector.Vector, k int, policy Policy) ([]model.SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	root := t.Root()
	if root == nil {
		return nil, nil
	}
	if d := src.Dim(); q.Dim() != d {
		return nil, &vector.ErrDimensionMismatch{Expected: d, Actual: q.Dim()}
	}

	n := src.Len()
	if n != t.Size() {
		return nil, fmt.Errorf("%w: %d rows, tree built over %d", ErrSourceMismatch, n, t.Size())
	}

	var c collector
	switch policy {
	case PolicyEvictNewest:
		c = newNewestCollector(k, n)
	default:
		c = newHeapCollector(k, n)
	}

	s := &searcher{t: t, src: src, q: q, stack: make([]int32, 0, 32)}
	s.descend(t.root)

	for len(s.stack) > 0 {
		id := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		node := &t.nodes[id]

		for _, idx := range node.Indices {
			d, err := vector.Distance(q, src.At(idx))
			if err != nil {
				return nil, err
			}
			c.offer(idx, d)
		}

		if node.Leaf || !node.HasChildren() {
			continue
		}

		qv, bv := s.split(node)
		if math.Abs(qv-bv) < c.worst() || c.count() < k {
			if qv <= bv {
				s.descend(node.Right)
			} else {
				s.descend(node.Left)
			}
		}
	}

	res := c.results()
	if len(res) > k {
		res = res[:k]
	}
	return res, nil
}

type searcher struct {
	t     *Tree
	src   Source
	q     vector.Vector
	stack []int32
}

// split returns the query coordinate and the node's boundary along the
// node's split dimension. The boundary is the coordinate of the node's first
// recorded index.
func (s *searcher) split(node *Node) (float64, float64) {
	return s.q[node.Dim], s.src.At(node.Indices[0])[node.Dim]
}

// descend walks from id towards a leaf or childless node, pushing every
// visited node.
func (s *searcher) descend(id int32) {
	for id != NoChild {
		s.stack = append(s.stack, id)
		node := &s.t.nodes[id]
		if node.Leaf || !node.HasChildren() {
			return
		}
		if qv, bv := s.split(node); qv <= bv {
			id = node.Left
		} else {
			id = node.Right
		}
	}
}

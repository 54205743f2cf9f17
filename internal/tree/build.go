package tree

import (
	"fmt"
)

// Build constructs a tree over positions 0..src.Len()-1. An empty source
// yields an empty tree whose Root is nil.
func Build(src Source, leafSize int, splitter Splitter) (*Tree, error) {
	if leafSize < 1 {
		return nil, fmt.Errorf("tree: leaf size must be at least 1, got %d", leafSize)
	}

	n := src.Len()
	t := &Tree{
		root:     NoChild,
		leafSize: leafSize,
		size:     n,
	}
	if n == 0 {
		return t, nil
	}

	// A balanced tree has fewer than 2n/leafSize nodes.
	t.nodes = make([]Node, 0, 2*(n/leafSize)+1)

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	root, err := t.build(src, splitter, indices)
	if err != nil {
		return nil, err
	}
	t.root = root

	return t, nil
}

func (t *Tree) build(src Source, splitter Splitter, indices []int) (int32, error) {
	id := t.alloc()

	if len(indices) < t.leafSize {
		t.nodes[id].Leaf = true
		t.nodes[id].Indices = indices
		return id, nil
	}

	rule, err := splitter.Split(src, indices)
	if err != nil {
		return NoChild, err
	}

	t.nodes[id].Dim = rule.Dim
	t.nodes[id].Rule = rule
	t.nodes[id].Indices = indices

	left := make([]int, 0, len(indices)/2+1)
	right := make([]int, 0, len(indices)/2+1)
	for _, i := range indices {
		if rule.RoutesLeft(src.At(i)) {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Degenerate split: keep the node unsplit with its full subset.
	if len(left) == 0 || len(right) == 0 {
		return id, nil
	}

	// t.nodes may be reallocated by the recursive calls, so children are
	// assigned by id rather than through a held pointer.
	l, err := t.build(src, splitter, left)
	if err != nil {
		return NoChild, err
	}
	r, err := t.build(src, splitter, right)
	if err != nil {
		return NoChild, err
	}
	t.nodes[id].Left = l
	t.nodes[id].Right = r

	return id, nil
}

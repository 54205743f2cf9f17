package tree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Stats describes the shape of a built tree.
type Stats struct {
	Nodes       int     `json:"nodes"`
	Leaves      int     `json:"leaves"`
	Unsplit     int     `json:"unsplit"`
	Depth       int     `json:"depth"`
	MinLeafSize int     `json:"minLeafSize"`
	MaxLeafSize int     `json:"maxLeafSize"`
	AvgLeafSize float64 `json:"avgLeafSize"`
}

// Stats walks the tree and summarises its shape. Unsplit nodes count as
// terminal buckets in the leaf size figures.
func (t *Tree) Stats() Stats {
	var st Stats
	if t.Root() == nil {
		return st
	}

	st.Nodes = len(t.nodes)

	total := 0
	buckets := 0

	type frame struct {
		id    int32
		depth int
	}
	stack := []frame{{id: t.root, depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[f.id]

		st.Depth = max(st.Depth, f.depth)

		if node.HasChildren() {
			stack = append(stack, frame{node.Right, f.depth + 1}, frame{node.Left, f.depth + 1})
			continue
		}

		if node.Leaf {
			st.Leaves++
		} else {
			st.Unsplit++
		}

		size := len(node.Indices)
		if buckets == 0 || size < st.MinLeafSize {
			st.MinLeafSize = size
		}
		st.MaxLeafSize = max(st.MaxLeafSize, size)
		total += size
		buckets++
	}

	if buckets > 0 {
		st.AvgLeafSize = float64(total) / float64(buckets)
	}

	return st
}

// Validate checks that the terminal nodes (leaves and unsplit nodes) cover
// every position 0..n-1 exactly once and that every internal node's subset
// is the union of its children's.
func (t *Tree) Validate(n int) error {
	root := t.Root()
	if root == nil {
		if n != 0 {
			return fmt.Errorf("tree: empty tree for %d positions", n)
		}
		return nil
	}

	covered := roaring.New()

	stack := []int32{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[id]

		if len(node.Indices) == 0 {
			return fmt.Errorf("tree: node %d has no indices", id)
		}

		if node.HasChildren() {
			l, r := &t.nodes[node.Left], &t.nodes[node.Right]
			if len(l.Indices)+len(r.Indices) != len(node.Indices) {
				return fmt.Errorf("tree: node %d children hold %d indices, want %d",
					id, len(l.Indices)+len(r.Indices), len(node.Indices))
			}
			stack = append(stack, node.Right, node.Left)
			continue
		}

		for _, i := range node.Indices {
			if i < 0 || i >= n {
				return fmt.Errorf("tree: node %d holds out-of-range index %d", id, i)
			}
			if !covered.CheckedAdd(uint32(i)) {
				return fmt.Errorf("tree: index %d covered more than once", i)
			}
		}
	}

	if got := covered.GetCardinality(); got != uint64(n) {
		return fmt.Errorf("tree: terminal nodes cover %d of %d positions", got, n)
	}

	return nil
}

// Dump writes every node's indices in order (left subtree, node, right
// subtree), one line per node, indented by depth.
func (t *Tree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if t.Root() == nil {
		if _, err := bw.WriteString("empty tree\n"); err != nil {
			return err
		}
		return bw.Flush()
	}

	if err := t.dump(bw, t.root, 0); err != nil {
		return err
	}

	return bw.Flush()
}

func (t *Tree) dump(w *bufio.Writer, id int32, depth int) error {
	if id == NoChild {
		return nil
	}
	node := &t.nodes[id]

	if err := t.dump(w, node.Left, depth+1); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	switch {
	case node.Leaf:
		sb.WriteString("leaf")
	case node.HasChildren():
		fmt.Fprintf(&sb, "node dim=%d %s", node.Dim, node.Rule.Kind)
	default:
		fmt.Fprintf(&sb, "unsplit dim=%d", node.Dim)
	}
	sb.WriteString(" indices:")
	for _, i := range node.Indices {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(i))
	}
	sb.WriteByte('\n')

	if _, err := w.WriteString(sb.String()); err != nil {
		return err
	}

	return t.dump(w, node.Right, depth+1)
}

package tree

// NoChild marks an absent child reference.
const NoChild int32 = -1

// Node is one vertex of the tree. Children are references into the owning
// Tree's node arena.
type Node struct {
	// Leaf is set for nodes whose subset was smaller than the leaf size.
	Leaf bool
	// Dim is the split dimension. Meaningless for leaves.
	Dim  int
	Rule Rule
	// Indices is the subset this node was built from. Internal nodes keep it
	// alongside their children.
	Indices []int
	Left    int32
	Right   int32
}

// HasChildren reports whether the node was actually split.
func (n *Node) HasChildren() bool {
	return n.Left != NoChild && n.Right != NoChild
}

// Unsplit reports whether the node reached the leaf size but its split was
// abandoned because one side would have been empty.
func (n *Node) Unsplit() bool {
	return !n.Leaf && !n.HasChildren()
}

// Tree owns every node in a single arena. A Tree is immutable once built and
// safe for concurrent searches.
type Tree struct {
	nodes    []Node
	root     int32
	leafSize int
	size     int
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	if t == nil || t.root == NoChild {
		return nil
	}
	return &t.nodes[t.root]
}

// Node returns the node with the given arena id, or nil when out of range.
func (t *Tree) Node(id int32) *Node {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// NumNodes returns the number of nodes in the arena.
func (t *Tree) NumNodes() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Size returns the number of dataset positions the tree was built over.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	return t.size
}

// LeafSize returns the threshold the tree was built with.
func (t *Tree) LeafSize() int {
	if t == nil {
		return 0
	}
	return t.leafSize
}

func (t *Tree) alloc() int32 {
	t.nodes = append(t.nodes, Node{Left: NoChild, Right: NoChild})
	return int32(len(t.nodes) - 1)
}

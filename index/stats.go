package index

import (
	"fmt"
	"strings"

	"github.com/hupe1980/vectree/internal/tree"
)

// TreeStats describes the shape of a built tree. Unsplit nodes are nodes
// whose split was abandoned because one side would have been empty.
type TreeStats struct {
	Nodes       int     `json:"nodes"`
	Leaves      int     `json:"leaves"`
	Unsplit     int     `json:"unsplit"`
	Depth       int     `json:"depth"`
	MinLeafSize int     `json:"minLeafSize"`
	MaxLeafSize int     `json:"maxLeafSize"`
	AvgLeafSize float64 `json:"avgLeafSize"`
}

func treeStats(st tree.Stats) TreeStats {
	return TreeStats(st)
}

// Stats describes an index snapshot.
type Stats struct {
	Kind       string    `json:"kind"`
	Vectors    int       `json:"vectors"`
	Dimension  int       `json:"dimension"`
	LeafSize   int       `json:"leafSize"`
	Policy     string    `json:"policy"`
	Generation uint64    `json:"generation"`
	Tree       TreeStats `json:"tree"`
}

func (s Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s index: %d vectors, dimension %d, leaf size %d, policy %s, generation %d\n",
		s.Kind, s.Vectors, s.Dimension, s.LeafSize, s.Policy, s.Generation)
	fmt.Fprintf(&sb, "tree: %d nodes, %d leaves, %d unsplit, depth %d, leaf size min/avg/max %d/%.1f/%d",
		s.Tree.Nodes, s.Tree.Leaves, s.Tree.Unsplit, s.Tree.Depth,
		s.Tree.MinLeafSize, s.Tree.AvgLeafSize, s.Tree.MaxLeafSize)
	return sb.String()
}

package index

import (
	"io"

	"github.com/hupe1980/vectree/dataset"
	"github.com/hupe1980/vectree/internal/tree"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

// Snapshot is an immutable pairing of rows and the tree built over them.
// It is safe for concurrent use.
type Snapshot struct {
	kind   model.Kind
	rows   *dataset.Store
	tree   *tree.Tree
	policy ResultPolicy
	gen    uint64
}

// Generation identifies the rebuild that produced the snapshot.
func (s *Snapshot) Generation() uint64 { return s.gen }

// Len returns the number of rows.
func (s *Snapshot) Len() int { return s.rows.Len() }

// Dim returns the row dimension.
func (s *Snapshot) Dim() int { return s.rows.Dim() }

// At returns the row at position i. The result must not be modified.
func (s *Snapshot) At(i int) vector.Vector { return s.rows.At(i) }

// Rows returns every row. The slice and its vectors must not be modified.
func (s *Snapshot) Rows() []vector.Vector { return s.rows.Rows() }

// Search returns up to k nearest rows to q, sorted by ascending distance and
// then by row position.
func (s *Snapshot) Search(q vector.Vector, k int) ([]model.SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if s.tree.Root() == nil || s.rows.Len() == 0 {
		return nil, ErrEmptyIndex
	}
	if q.Dim() != s.rows.Dim() {
		return nil, &ErrDimensionMismatch{Expected: s.rows.Dim(), Actual: q.Dim()}
	}

	return tree.Search(s.tree, s.rows, q, k, s.policy)
}

// Stats describes the snapshot.
func (s *Snapshot) Stats() Stats {
	return Stats{
		Kind:       s.kind.String(),
		Vectors:    s.rows.Len(),
		Dimension:  s.rows.Dim(),
		LeafSize:   s.tree.LeafSize(),
		Policy:     s.policy.String(),
		Generation: s.gen,
		Tree:       treeStats(s.tree.Stats()),
	}
}

// Validate checks that the tree's terminal nodes cover every row exactly
// once.
func (s *Snapshot) Validate() error {
	return s.tree.Validate(s.rows.Len())
}

// Dump writes every node's row positions in order, indented by depth.
func (s *Snapshot) Dump(w io.Writer) error {
	return s.tree.Dump(w)
}

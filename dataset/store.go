package dataset

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/vectree/vector"
)

// Store is an ordered sequence of equal-dimension vectors. The first append
// fixes the dimension. A Store is not safe for concurrent mutation; callers
// that share one across goroutines treat it as read-only.
type Store struct {
	rows []vector.Vector
	dim  int
}

// NewStore returns a store holding vs.
func NewStore(vs ...vector.Vector) (*Store, error) {
	s := &Store{}
	if err := s.Append(vs...); err != nil {
		return nil, err
	}
	return s, nil
}

// Append copies vs onto the end of the store. Either every vector is
// appended or, on a dimension mismatch or an empty vector, none is.
func (s *Store) Append(vs ...vector.Vector) error {
	dim := s.dim
	for _, v := range vs {
		if v.Dim() == 0 {
			return vector.ErrEmpty
		}
		if dim == 0 {
			dim = v.Dim()
		}
		if v.Dim() != dim {
			return &vector.ErrDimensionMismatch{Expected: dim, Actual: v.Dim()}
		}
	}

	for _, v := range vs {
		s.rows = append(s.rows, v.Clone())
	}
	s.dim = dim
	return nil
}

// Remove erases, for each v in order, the first row exactly equal to v that
// has not already been erased. Vectors with no match are ignored. It returns
// the number of rows erased. Order of the surviving rows is preserved.
func (s *Store) Remove(vs ...vector.Vector) int {
	victims := roaring.New()

	for _, v := range vs {
		for i, row := range s.rows {
			if victims.Contains(uint32(i)) {
				continue
			}
			if vector.Equal(row, v) {
				victims.Add(uint32(i))
				break
			}
		}
	}

	removed := int(victims.GetCardinality())
	if removed == 0 {
		return 0
	}

	kept := make([]vector.Vector, 0, len(s.rows)-removed)
	for i, row := range s.rows {
		if !victims.Contains(uint32(i)) {
			kept = append(kept, row)
		}
	}
	s.rows = kept

	return removed
}

// At returns the row at position i. The result must not be modified.
func (s *Store) At(i int) vector.Vector { return s.rows[i] }

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// Dim returns the row dimension, or 0 for a store that never held a row.
func (s *Store) Dim() int { return s.dim }

// Rows returns the rows. The slice and its vectors must not be modified.
func (s *Store) Rows() []vector.Vector { return s.rows }

// Clone returns a store sharing the (immutable) row vectors but with its own
// row list, so either can be mutated without affecting the other.
func (s *Store) Clone() *Store {
	rows := make([]vector.Vector, len(s.rows))
	copy(rows, s.rows)
	return &Store{rows: rows, dim: s.dim}
}

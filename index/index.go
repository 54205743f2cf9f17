package index

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vectree/internal/tree"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

var (
	// ErrEmptyIndex is returned when searching an index without rows.
	ErrEmptyIndex = errors.New("index: empty index")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = tree.ErrInvalidK
)

// ErrDimensionMismatch reports a vector whose dimension differs from the
// index's.
type ErrDimensionMismatch = vector.ErrDimensionMismatch

// ErrInvalidLeafSize reports a leaf size below 1.
type ErrInvalidLeafSize struct {
	LeafSize int
}

func (e *ErrInvalidLeafSize) Error() string {
	return fmt.Sprintf("index: leaf size must be at least 1, got %d", e.LeafSize)
}

// ResultPolicy selects how search maintains its top-k candidates.
type ResultPolicy = tree.Policy

const (
	// PolicyMaxHeap keeps the k closest candidates seen. It is the default.
	PolicyMaxHeap = tree.PolicyMaxHeap
	// PolicyEvictNewest replaces the most recently admitted candidate when a
	// closer one arrives. It can return worse neighbours than PolicyMaxHeap.
	PolicyEvictNewest = tree.PolicyEvictNewest
)

// ParseResultPolicy parses "max-heap" or "evict-newest".
func ParseResultPolicy(s string) (ResultPolicy, error) {
	return tree.ParsePolicy(s)
}

// Index is a nearest-neighbour index over fixed-dimension vectors.
type Index interface {
	// Kind reports the split strategy.
	Kind() model.Kind

	// AddData appends vectors and rebuilds the tree.
	AddData(vs []vector.Vector) error

	// RemoveData erases, for each vector, the first exactly equal row and
	// rebuilds the tree. It returns the number of rows erased.
	RemoveData(vs []vector.Vector) (int, error)

	// Search returns up to k nearest rows to q, closest first.
	Search(q vector.Vector, k int) ([]model.SearchResult, error)

	// Len returns the number of rows.
	Len() int

	// Dim returns the row dimension, or 0 before the first row.
	Dim() int

	// Generation increases with every published rebuild.
	Generation() uint64

	// Stats describes the index and its current tree.
	Stats() Stats
}

// Options contains configuration shared by tree indexes.
type Options struct {
	// LeafSize is the subset size below which a node becomes a leaf.
	LeafSize int

	// Policy selects top-k maintenance during search.
	Policy ResultPolicy
}

// DefaultLeafSize is the leaf size used when none is configured.
const DefaultLeafSize = 200

// Validate checks the options.
func (o Options) Validate() error {
	if o.LeafSize < 1 {
		return &ErrInvalidLeafSize{LeafSize: o.LeafSize}
	}
	return nil
}

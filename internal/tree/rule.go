package tree

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vectree/vector"
)

// ErrEmptySubset is returned by a Splitter asked to split no indices.
var ErrEmptySubset = errors.New("tree: empty index subset")

// RuleKind tags the form of a split rule.
type RuleKind uint8

const (
	// RuleAxis routes by a single coordinate: v[Dim] <= Threshold.
	RuleAxis RuleKind = iota
	// RuleProjection routes by a projection: dot(v, Direction) <= Threshold.
	RuleProjection
)

func (k RuleKind) String() string {
	switch k {
	case RuleAxis:
		return "axis"
	case RuleProjection:
		return "projection"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Rule is the split produced for one node.
type Rule struct {
	Kind RuleKind
	// Dim is the split dimension recorded on the node. Search descends and
	// prunes along it for both rule kinds.
	Dim       int
	Threshold float64
	// Direction is the unit projection direction; nil for RuleAxis.
	Direction vector.Vector
}

// RoutesLeft reports whether v belongs to the left side of the split.
func (r Rule) RoutesLeft(v vector.Vector) bool {
	switch r.Kind {
	case RuleProjection:
		p, err := vector.Dot(v, r.Direction)
		if err != nil {
			return false
		}
		return p <= r.Threshold
	default:
		return v[r.Dim] <= r.Threshold
	}
}

// Source exposes the vectors behind dataset positions.
type Source interface {
	// At returns the vector at position i. The result must not be modified.
	At(i int) vector.Vector
	// Len returns the number of vectors.
	Len() int
	// Dim returns the common dimension, or 0 when empty.
	Dim() int
}

// Splitter chooses how to split a non-empty subset of a Source.
type Splitter interface {
	Split(src Source, indices []int) (Rule, error)
}

// Package kdtree provides the axis-aligned median split strategy.
//
// Each node splits on the dimension with the largest spread among its rows
// (the first such dimension on ties) at the median coordinate along it.
package kdtree

import (
	"math"

	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/internal/tree"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

// Options contains configuration options for the KD index.
type Options struct {
	// LeafSize is the subset size below which a node becomes a leaf.
	LeafSize int
	// Policy selects top-k maintenance during search.
	Policy index.ResultPolicy
}

// DefaultOptions contains the default configuration options for the KD index.
var DefaultOptions = Options{
	LeafSize: index.DefaultLeafSize,
	Policy:   index.PolicyMaxHeap,
}

// New creates an empty KD index.
func New(optFns ...func(o *Options)) (*index.TreeIndex, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	return index.NewTreeIndex(model.KindKD, Splitter{}, index.Options{
		LeafSize: opts.LeafSize,
		Policy:   opts.Policy,
	})
}

// Splitter implements the KD split rule. It is stateless.
type Splitter struct{}

// Split picks the widest dimension and its median.
func (Splitter) Split(src tree.Source, indices []int) (tree.Rule, error) {
	if len(indices) == 0 {
		return tree.Rule{}, tree.ErrEmptySubset
	}

	dim := src.Dim()
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for d := range dim {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}

	for _, i := range indices {
		v := src.At(i)
		for d, x := range v {
			lo[d] = math.Min(lo[d], x)
			hi[d] = math.Max(hi[d], x)
		}
	}

	best := 0
	for d := 1; d < dim; d++ {
		if hi[d]-lo[d] > hi[best]-lo[best] {
			best = d
		}
	}

	vals := make([]float64, len(indices))
	for j, i := range indices {
		vals[j] = src.At(i)[best]
	}

	return tree.Rule{
		Kind:      tree.RuleAxis,
		Dim:       best,
		Threshold: vector.Median(vals),
	}, nil
}

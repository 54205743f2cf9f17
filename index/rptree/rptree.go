// Package rptree provides the random-projection split strategy.
//
// Each node draws a direction with components uniform in [-1, 1], normalises
// it, and splits at the median projection shifted by a random amount that
// scales with the square root of the subset's diameter. The direction is not
// uniform on the sphere.
//
// Search routes queries with a single-coordinate test along the direction's
// dominant axis rather than with the projection, so RP results are
// approximate.
package rptree

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/internal/tree"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

// shiftScale scales the random threshold shift: delta = U(-1,1) * shiftScale
// * sqrt(diam) / sqrt(dim).
const shiftScale = 6.0

// Options contains configuration options for the RP index.
type Options struct {
	// LeafSize is the subset size below which a node becomes a leaf.
	LeafSize int
	// Policy selects top-k maintenance during search.
	Policy index.ResultPolicy
	// Seed makes tree construction reproducible. Zero draws a random seed.
	Seed uint64
}

// DefaultOptions contains the default configuration options for the RP index.
var DefaultOptions = Options{
	LeafSize: index.DefaultLeafSize,
	Policy:   index.PolicyMaxHeap,
}

// New creates an empty RP index.
func New(optFns ...func(o *Options)) (*index.TreeIndex, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	return index.NewTreeIndex(model.KindRP, NewSplitter(opts.Seed), index.Options{
		LeafSize: opts.LeafSize,
		Policy:   opts.Policy,
	})
}

// Splitter implements the RP split rule. It is not safe for concurrent use.
type Splitter struct {
	uniform distuv.Uniform
}

// NewSplitter returns a splitter drawing from a PCG source seeded with seed,
// or with a random seed when seed is zero.
func NewSplitter(seed uint64) *Splitter {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Splitter{
		uniform: distuv.Uniform{
			Min: -1,
			Max: 1,
			Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
		},
	}
}

// Split draws a direction and shift and splits at the shifted median
// projection.
func (s *Splitter) Split(src tree.Source, indices []int) (tree.Rule, error) {
	if len(indices) == 0 {
		return tree.Rule{}, tree.ErrEmptySubset
	}

	dim := src.Dim()
	dir := s.direction(dim)

	proj := make([]float64, len(indices))
	for j, i := range indices {
		p, err := vector.Dot(src.At(i), dir)
		if err != nil {
			return tree.Rule{}, err
		}
		proj[j] = p
	}
	median := vector.Median(proj)

	anchor := src.At(indices[0])
	diam := 0.0
	for _, i := range indices[1:] {
		d, err := vector.Distance(anchor, src.At(i))
		if err != nil {
			return tree.Rule{}, err
		}
		diam = math.Max(diam, d)
	}

	delta := s.uniform.Rand() * shiftScale * math.Sqrt(diam) / math.Sqrt(float64(dim))

	return tree.Rule{
		Kind:      tree.RuleProjection,
		Dim:       dominantAxis(dir),
		Threshold: median + delta,
		Direction: dir,
	}, nil
}

// direction draws a unit vector with i.i.d. U(-1,1) components before
// normalisation, redrawing the (measure-zero) zero vector.
func (s *Splitter) direction(dim int) vector.Vector {
	dir := vector.New(dim)
	for {
		for j := range dir {
			dir[j] = s.uniform.Rand()
		}
		if vector.Normalize(dir) {
			return dir
		}
	}
}

// dominantAxis returns the first component with the largest magnitude.
func dominantAxis(dir vector.Vector) int {
	best := 0
	for j := 1; j < len(dir); j++ {
		if math.Abs(dir[j]) > math.Abs(dir[best]) {
			best = j
		}
	}
	return best
}

package rptree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vectree/internal/tree"
	"github.com/hupe1980/vectree/testutil"
	"github.com/hupe1980/vectree/vector"
)

type rows []vector.Vector

func (r rows) At(i int) vector.Vector { return r[i] }
func (r rows) Len() int               { return len(r) }
func (r rows) Dim() int               { return len(r[0]) }

func TestSplitter_Rule(t *testing.T) {
	src := rows(testutil.NewRNG(5).UniformRangeVectors(100, 6, -10, 10))
	indices := make([]int, len(src))
	for i := range indices {
		indices[i] = i
	}

	s := NewSplitter(42)
	for range 20 {
		rule, err := s.Split(src, indices)
		require.NoError(t, err)

		assert.Equal(t, tree.RuleProjection, rule.Kind)
		require.Len(t, rule.Direction, 6)
		assert.InDelta(t, 1.0, vector.Norm(rule.Direction), 1e-9)
		assert.Equal(t, dominantAxis(rule.Direction), rule.Dim)

		for _, x := range rule.Direction {
			assert.LessOrEqual(t, math.Abs(x), math.Abs(rule.Direction[rule.Dim]))
		}

		// The shift is bounded by 6*sqrt(diam)/sqrt(dim) around the median.
		proj := make([]float64, len(indices))
		diam := 0.0
		for j, i := range indices {
			proj[j], _ = vector.Dot(src[i], rule.Direction)
			d, _ := vector.Distance(src[0], src[i])
			diam = math.Max(diam, d)
		}
		bound := shiftScale * math.Sqrt(diam) / math.Sqrt(6)
		assert.LessOrEqual(t, math.Abs(rule.Threshold-vector.Median(proj)), bound)
	}
}

func TestSplitter_Deterministic(t *testing.T) {
	src := rows{{0, 0}, {1, 2}, {3, 1}, {4, 4}}
	indices := []int{0, 1, 2, 3}

	a, err := NewSplitter(7).Split(src, indices)
	require.NoError(t, err)
	b, err := NewSplitter(7).Split(src, indices)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSplitter_EmptySubset(t *testing.T) {
	_, err := NewSplitter(1).Split(rows{{1}}, nil)
	assert.ErrorIs(t, err, tree.ErrEmptySubset)
}

func TestSplitter_SinglePoint(t *testing.T) {
	rule, err := NewSplitter(3).Split(rows{{2, 2}}, []int{0})
	require.NoError(t, err)

	// diam is zero, so the threshold is exactly the projection.
	p, _ := vector.Dot(vector.Vector{2, 2}, rule.Direction)
	assert.InDelta(t, p, rule.Threshold, 1e-12)
}

func TestDominantAxis(t *testing.T) {
	assert.Equal(t, 1, dominantAxis(vector.Vector{0.1, -0.9, 0.3}))
	assert.Equal(t, 0, dominantAxis(vector.Vector{0.5, -0.5}))
}

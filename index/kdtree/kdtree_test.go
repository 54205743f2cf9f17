package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vectree/internal/tree"
	"github.com/hupe1980/vectree/vector"
)

type rows []vector.Vector

func (r rows) At(i int) vector.Vector { return r[i] }
func (r rows) Len() int               { return len(r) }
func (r rows) Dim() int               { return len(r[0]) }

func TestSplitter(t *testing.T) {
	tests := []struct {
		name      string
		rows      rows
		indices   []int
		dim       int
		threshold float64
	}{
		{
			name:      "widest dimension odd count",
			rows:      rows{{0, 10}, {1, 0}, {2, 5}},
			indices:   []int{0, 1, 2},
			dim:       1,
			threshold: 5,
		},
		{
			name:      "even count averages the middle pair",
			rows:      rows{{0, 0}, {5, 5}, {1, 1}, {9, 9}},
			indices:   []int{0, 1, 2, 3},
			dim:       0,
			threshold: 3,
		},
		{
			name:      "ties pick the first dimension",
			rows:      rows{{0, 0, 0}, {4, 4, 4}},
			indices:   []int{0, 1},
			dim:       0,
			threshold: 2,
		},
		{
			name:      "subset only",
			rows:      rows{{100, 0}, {0, 1}, {0, 3}},
			indices:   []int{1, 2},
			dim:       1,
			threshold: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Splitter{}.Split(tt.rows, tt.indices)
			require.NoError(t, err)
			assert.Equal(t, tree.RuleAxis, rule.Kind)
			assert.Equal(t, tt.dim, rule.Dim)
			assert.InDelta(t, tt.threshold, rule.Threshold, 1e-12)
			assert.Nil(t, rule.Direction)
		})
	}
}

func TestSplitter_EmptySubset(t *testing.T) {
	_, err := Splitter{}.Split(rows{{1}}, nil)
	assert.ErrorIs(t, err, tree.ErrEmptySubset)
}

func TestNew_Defaults(t *testing.T) {
	idx, err := New()
	require.NoError(t, err)
	assert.Equal(t, 200, idx.Options().LeafSize)
}

package bruteforce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/testutil"
	"github.com/hupe1980/vectree/vector"
)

func TestSearch(t *testing.T) {
	rows := []vector.Vector{{0, 0}, {5, 5}, {1, 1}, {9, 9}}

	res, err := Search(rows, vector.Vector{0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.SearchResult{
		{Index: 0, Distance: 1},
		{Index: 2, Distance: 1},
	}, res)

	res, err = Search(rows, vector.Vector{9, 9}, 10)
	require.NoError(t, err)
	assert.Len(t, res, 4)
	assert.Equal(t, 3, res[0].Index)
}

func TestSearch_MatchesOracle(t *testing.T) {
	rng := testutil.NewRNG(17)
	rows := rng.GaussianVectors(250, 5)

	for _, q := range rng.GaussianVectors(10, 5) {
		got, err := Search(rows, q, 9)
		require.NoError(t, err)
		want := testutil.ExactTopK(rows, q, 9)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Index, got[i].Index)
			assert.InDelta(t, want[i].Distance, got[i].Distance, 1e-9)
		}
	}
}

func TestSearch_Errors(t *testing.T) {
	_, err := Search(nil, vector.Vector{0}, 1)
	assert.ErrorIs(t, err, index.ErrEmptyIndex)

	_, err = Search([]vector.Vector{{0}}, vector.Vector{0}, 0)
	assert.ErrorIs(t, err, index.ErrInvalidK)

	_, err = Search([]vector.Vector{{0}}, vector.Vector{0, 1}, 1)
	var dm *vector.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector
		expected float64
	}{
		{"Simple", Vector{1, 2, 3}, Vector{4, 5, 6}, 32},
		{"Zero", Vector{0, 0, 0}, Vector{0, 0, 0}, 0},
		{"Mixed", Vector{1, -1, 2}, Vector{1, 1, -2}, -4},
		{"Empty", Vector{}, Vector{}, 0},
		{"Single", Vector{2}, Vector{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dot(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)

			rev, err := Dot(tt.b, tt.a)
			require.NoError(t, err)
			assert.InDelta(t, got, rev, 1e-12)
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector
		expected float64
	}{
		{"Simple", Vector{0, 0}, Vector{3, 4}, 5},
		{"Identical", Vector{1, 2, 3}, Vector{1, 2, 3}, 0},
		{"Mixed", Vector{1, -1}, Vector{-1, 1}, math.Sqrt(8)},
		{"Empty", Vector{}, Vector{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distance(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)

			rev, err := Distance(tt.b, tt.a)
			require.NoError(t, err)
			assert.InDelta(t, got, rev, 1e-12)
		})
	}

	t.Run("SelfIsZero", func(t *testing.T) {
		v := Vector{0.1, -7.25, 3e9}
		d, err := Distance(v, v)
		require.NoError(t, err)
		assert.Zero(t, d)
	})
}

func TestDimensionMismatch(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{1, 2}

	_, err := Dot(a, b)
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 3, dm.Expected)
	assert.Equal(t, 2, dm.Actual)

	_, err = Distance(a, b)
	assert.ErrorAs(t, err, &dm)

	_, err = Add(a, b)
	assert.ErrorAs(t, err, &dm)

	_, err = Sub(a, b)
	assert.ErrorAs(t, err, &dm)
}

func TestAddSub(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{4, 5, 6}

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, Vector{5, 7, 9}, sum)

	diff, err := Sub(b, a)
	require.NoError(t, err)
	assert.Equal(t, Vector{3, 3, 3}, diff)

	// Inputs are not modified.
	assert.Equal(t, Vector{1, 2, 3}, a)
}

func TestComponent(t *testing.T) {
	v := New(3)
	require.NoError(t, v.SetComponent(1, 2.5))

	x, err := v.Component(1)
	require.NoError(t, err)
	assert.Equal(t, 2.5, x)

	var oor *ErrOutOfRange
	_, err = v.Component(3)
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 3, oor.Index)
	assert.Equal(t, 3, oor.Len)

	_, err = v.Component(-1)
	assert.ErrorAs(t, err, &oor)

	err = v.SetComponent(5, 1)
	assert.ErrorAs(t, err, &oor)
}

func TestNormalize(t *testing.T) {
	v := Vector{3, 4}
	require.True(t, Normalize(v))
	assert.InDelta(t, 0.6, v[0], 1e-12)
	assert.InDelta(t, 0.8, v[1], 1e-12)
	assert.InDelta(t, 1.0, Norm(v), 1e-12)

	zero := Vector{0, 0, 0}
	assert.False(t, Normalize(zero))
	assert.Equal(t, Vector{0, 0, 0}, zero)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Vector{1, 2}, Vector{1, 2}))
	assert.False(t, Equal(Vector{1, 2}, Vector{1, 2 + 1e-15}))
	assert.False(t, Equal(Vector{1, 2}, Vector{1, 2, 0}))
	assert.False(t, Equal(Vector{math.NaN()}, Vector{math.NaN()}))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"Odd", []float64{5, 1, 3}, 3},
		{"Even", []float64{9, 0, 5, 1}, 3},
		{"Single", []float64{7}, 7},
		{"Duplicates", []float64{2, 2, 2, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]float64(nil), tt.values...)
			assert.Equal(t, tt.expected, Median(in))
			assert.Equal(t, tt.values, in, "input must not be reordered")
		})
	}

	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMedianAt(t *testing.T) {
	vs := []Vector{{0, 10}, {5, 20}, {1, 30}, {9, 40}}

	m, err := MedianAt(vs, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m)

	m, err = MedianAt(vs, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, m)

	_, err = MedianAt(nil, 0)
	assert.ErrorIs(t, err, ErrEmpty)

	var oor *ErrOutOfRange
	_, err = MedianAt(vs, 2)
	assert.ErrorAs(t, err, &oor)
}

package vector

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/viterin/vek"
)

// ErrEmpty is returned when a reduction is requested over no vectors.
var ErrEmpty = errors.New("vector: empty input")

// ErrDimensionMismatch is returned when two vectors of different
// dimensionality are combined.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrOutOfRange is returned for a component or dimension index outside [0, Len).
type ErrOutOfRange struct {
	Index int
	Len   int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// Vector is an ordered sequence of float64 components.
type Vector []float64

// New returns a zero vector with the given dimension.
func New(dim int) Vector {
	return make(Vector, dim)
}

// Dim returns the number of components.
func (v Vector) Dim() int { return len(v) }

// Clone returns a copy of v that shares no memory with it.
func (v Vector) Clone() Vector { return slices.Clone(v) }

// Component returns the i-th component.
func (v Vector) Component(i int) (float64, error) {
	if i < 0 || i >= len(v) {
		return 0, &ErrOutOfRange{Index: i, Len: len(v)}
	}
	return v[i], nil
}

// SetComponent sets the i-th component.
func (v Vector) SetComponent(i int, x float64) error {
	if i < 0 || i >= len(v) {
		return &ErrOutOfRange{Index: i, Len: len(v)}
	}
	v[i] = x
	return nil
}

func checkDims(a, b Vector) error {
	if len(a) != len(b) {
		return &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	return nil
}

// Dot returns the inner product of a and b.
func Dot(a, b Vector) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	return vek.Dot(a, b), nil
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	return vek.Distance(a, b), nil
}

// Add returns a + b as a new vector.
func Add(a, b Vector) (Vector, error) {
	if err := checkDims(a, b); err != nil {
		return nil, err
	}
	if len(a) == 0 {
		return Vector{}, nil
	}
	return vek.Add(a, b), nil
}

// Sub returns a - b as a new vector.
func Sub(a, b Vector) (Vector, error) {
	if err := checkDims(a, b); err != nil {
		return nil, err
	}
	if len(a) == 0 {
		return Vector{}, nil
	}
	return vek.Sub(a, b), nil
}

// Norm returns the L2 norm of v.
func Norm(v Vector) float64 {
	if len(v) == 0 {
		return 0
	}
	return vek.Norm(v)
}

// Normalize scales v to unit L2 length in place.
// Returns false and leaves v untouched if v has zero norm.
func Normalize(v Vector) bool {
	n := Norm(v)
	if n == 0 || math.IsNaN(n) {
		return false
	}
	vek.DivNumber_Inplace(v, n)
	return true
}

// Equal reports whether a and b have the same dimension and exactly equal
// components.
func Equal(a, b Vector) bool {
	return slices.Equal(a, b)
}

// Median returns the median of values: the middle element for an odd count and
// the mean of the two middle elements for an even count. values is not
// modified. The median of no values is NaN.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MedianAt returns the median of component dim over vs.
func MedianAt(vs []Vector, dim int) (float64, error) {
	if len(vs) == 0 {
		return 0, ErrEmpty
	}
	values := make([]float64, len(vs))
	for i, v := range vs {
		x, err := v.Component(dim)
		if err != nil {
			return 0, err
		}
		values[i] = x
	}
	return Median(values), nil
}

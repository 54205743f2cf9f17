// Package vector provides the fixed-dimension float64 vector primitive used by
// the tree indexes.
//
// Arithmetic is delegated to SIMD kernels from github.com/viterin/vek when the
// CPU supports them.
//
// # Equality
//
// Equal compares element by element with ==. Two vectors that differ in the
// last bit of a single component are not equal, and NaN never equals NaN.
// Callers that compute or round-trip vectors should track indices instead of
// relying on value equality for removal.
//
// # Usage
//
//	d, err := vector.Distance(a, b)
//	p, err := vector.Dot(a, dir)
//	vector.Normalize(dir)
//	m := vector.Median(values)
package vector

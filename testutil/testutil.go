package testutil

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: newRand(seed),
		seed: seed,
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = newRand(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
func (r *RNG) UniformVectors(num, dim int) []vector.Vector {
	return r.UniformRangeVectors(num, dim, 0, 1)
}

// UniformRangeVectors generates random vectors with values in [minVal, maxVal).
// Uses a single backing array for efficiency.
func (r *RNG) UniformRangeVectors(num, dim int, minVal, maxVal float64) []vector.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors := make([]vector.Vector, num)

	span := maxVal - minVal
	for i := range num {
		vec := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = minVal + r.rand.Float64()*span
		}
		vectors[i] = vec
	}

	return vectors
}

// GaussianVectors generates random vectors from a standard normal distribution.
func (r *RNG) GaussianVectors(num, dim int) []vector.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors := make([]vector.Vector, num)

	for i := range num {
		vec := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}

	return vectors
}

// ClusteredVectors generates vectors around random unit centroids.
// Useful for testing tree quality on non-uniform data.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) []vector.Vector {
	centroids := r.GaussianVectors(clusters, dim)
	for _, c := range centroids {
		vector.Normalize(c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([]vector.Vector, num)
	for i := range num {
		centroid := centroids[i%clusters]
		vec := make(vector.Vector, dim)
		for j := range vec {
			vec[j] = centroid[j] + r.rand.NormFloat64()*spread
		}
		vectors[i] = vec
	}

	return vectors
}

// ExactTopK returns the k nearest rows to q by exhaustive comparison,
// ordered by distance and then by row position.
func ExactTopK(rows []vector.Vector, q vector.Vector, k int) []model.SearchResult {
	res := make([]model.SearchResult, 0, len(rows))
	for i, row := range rows {
		var sum float64
		for j := range row {
			d := row[j] - q[j]
			sum += d * d
		}
		res = append(res, model.SearchResult{Index: i, Distance: math.Sqrt(sum)})
	}

	sort.Slice(res, func(a, b int) bool {
		if res[a].Distance != res[b].Distance {
			return res[a].Distance < res[b].Distance
		}
		return res[a].Index < res[b].Index
	})

	if len(res) > k {
		res = res[:k]
	}
	return res
}

// ComputeRecall computes recall@k by comparing approximate results against ground truth.
func ComputeRecall(groundTruth, approximate []model.SearchResult) float64 {
	if len(groundTruth) == 0 || len(approximate) == 0 {
		if len(groundTruth) == 0 && len(approximate) == 0 {
			return 1.0
		}
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[int]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i].Index] = struct{}{}
	}

	hits := 0
	for _, r := range approximate[:k] {
		if _, ok := truthSet[r.Index]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}

// Package testutil provides testing utilities for vectree.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors, computing exact
// nearest neighbours, and verifying search recall.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vs := rng.UniformVectors(1000, 8)          // uniform [0, 1)
//	qs := rng.ClusteredVectors(100, 8, 4, 0.1) // Gaussian blobs
//
// # Exact Search (Ground Truth)
//
//	truth := testutil.ExactTopK(vs, q, k)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(truth, approx)
package testutil

// Package model defines plain types shared by the index packages and the
// public API.
//
//   - Kind: split strategy of a tree index (KD or RP)
//   - SearchResult: dataset position and Euclidean distance of one neighbour
//
// Dataset positions are not stable identifiers: removing a vector shifts every
// later position down by one.
package model

// Package tree implements the binary space-partitioning tree shared by the KD
// and RP indexes: node arena, split rules, recursive build and the
// backtracking k-nearest-neighbour search.
//
// Every internal node keeps the full index subset it was built from. At
// search time a node's routing boundary is not read from its rule; it is
// re-derived as the coordinate of the node's first recorded index along the
// node's split dimension. The RP strategy therefore routes queries with the
// same single-coordinate test as KD even though it partitioned the data with
// a full projection.
package tree

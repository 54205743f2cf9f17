// Package index provides the tree index shared by the KD and RP strategies.
//
// A TreeIndex owns its rows and exactly one tree built over them. Every
// successful AddData or RemoveData builds a new tree and publishes rows and
// tree together as an immutable Snapshot. Searches never block on writers:
// each runs against the snapshot it loaded.
//
// The split strategy is supplied by the kdtree and rptree packages; use their
// New functions rather than NewTreeIndex directly.
package index

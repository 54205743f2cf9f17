package model

import "fmt"

// Kind selects the split strategy of a tree index.
type Kind int

const (
	// KindKD splits along the coordinate axis of widest spread at its median.
	KindKD Kind = iota
	// KindRP splits along a random unit direction at the (shifted) median projection.
	KindRP
)

func (k Kind) String() string {
	switch k {
	case KindKD:
		return "kd"
	case KindRP:
		return "rp"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ParseKind maps "kd" / "rp" (as produced by String) back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "kd", "KD", "kdtree":
		return KindKD, nil
	case "rp", "RP", "rptree":
		return KindRP, nil
	default:
		return 0, fmt.Errorf("unknown index kind %q", s)
	}
}

// SearchResult is one neighbour returned by a search.
type SearchResult struct {
	// Index is the position of the vector in the dataset at the time of the search.
	Index int `json:"index" yaml:"index"`

	// Distance is the Euclidean distance between the query and the vector.
	Distance float64 `json:"distance" yaml:"distance"`
}

// String returns a string representation of the SearchResult.
func (r SearchResult) String() string {
	return fmt.Sprintf("Result(%d:%g)", r.Index, r.Distance)
}

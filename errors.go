package vectree

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vectree/dataset"
	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/vector"
)

var (
	// ErrEmptyIndex is returned when searching a DB without rows.
	ErrEmptyIndex = errors.New("empty index")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrClosed is returned by every operation on a closed DB.
	ErrClosed = errors.New("db is closed")

	// ErrMalformedCSV is returned when a dataset cannot be parsed.
	ErrMalformedCSV = errors.New("malformed csv")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidLeafSize indicates a leaf size below 1.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidLeafSize struct {
	LeafSize int
	cause    error
}

func (e *ErrInvalidLeafSize) Error() string {
	return fmt.Sprintf("invalid leaf size: %d", e.LeafSize)
}

func (e *ErrInvalidLeafSize) Unwrap() error { return e.cause }

// ErrOutOfRange indicates a component or row position outside its bounds.
type ErrOutOfRange struct {
	Index int
	Len   int
	cause error
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *ErrOutOfRange) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, index.ErrEmptyIndex) {
		return fmt.Errorf("%w: %w", ErrEmptyIndex, err)
	}
	if errors.Is(err, index.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	var dm *vector.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var ls *index.ErrInvalidLeafSize
	if errors.As(err, &ls) {
		return &ErrInvalidLeafSize{LeafSize: ls.LeafSize, cause: err}
	}
	var oor *vector.ErrOutOfRange
	if errors.As(err, &oor) {
		return &ErrOutOfRange{Index: oor.Index, Len: oor.Len, cause: err}
	}
	var mr *dataset.ErrMalformedRow
	if errors.As(err, &mr) {
		return fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}

	return err
}

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/vectree/vector"
)

// ErrMalformedRow reports the first line of a CSV input that could not be
// parsed. Nothing is returned from a malformed input.
type ErrMalformedRow struct {
	Line int
	Err  error
}

func (e *ErrMalformedRow) Error() string {
	return fmt.Sprintf("dataset: malformed row at line %d: %v", e.Line, e.Err)
}

func (e *ErrMalformedRow) Unwrap() error { return e.Err }

// ReadCSV parses one vector per line. Values are comma separated and may be
// surrounded by spaces; blank lines are skipped. Every row must have the
// width of the first.
func ReadCSV(r io.Reader) ([]vector.Vector, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	var (
		out   []vector.Vector
		width int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ErrMalformedRow{Line: pe.Line, Err: pe.Err}
			}
			return nil, err
		}

		line, _ := cr.FieldPos(0)

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if width == 0 {
			width = len(rec)
		}
		if len(rec) != width {
			return nil, &ErrMalformedRow{Line: line, Err: &vector.ErrDimensionMismatch{Expected: width, Actual: len(rec)}}
		}

		v := make(vector.Vector, len(rec))
		for i, field := range rec {
			x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &ErrMalformedRow{Line: line, Err: err}
			}
			v[i] = x
		}
		out = append(out, v)
	}
}

// WriteCSV writes vs in the format ReadCSV accepts, using the shortest
// representation that round-trips each value.
func WriteCSV(w io.Writer, vs []vector.Vector) error {
	cw := csv.NewWriter(w)

	var rec []string
	for _, v := range vs {
		rec = rec[:0]
		for _, x := range v {
			rec = append(rec, strconv.FormatFloat(x, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

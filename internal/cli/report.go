package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/vectree/codec"
	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/model"
)

// QueryReport holds the neighbours found for one test vector.
type QueryReport struct {
	Query     int                  `json:"query" yaml:"query"`
	Neighbors []model.SearchResult `json:"neighbors" yaml:"neighbors"`
}

// Report is the machine-readable output of a run.
type Report struct {
	Method    string        `json:"method" yaml:"method"`
	Train     int           `json:"train" yaml:"train"`
	K         int           `json:"k" yaml:"k"`
	ElapsedMS int64         `json:"elapsedMs" yaml:"elapsedMs"`
	Stats     *index.Stats  `json:"stats,omitempty" yaml:"stats,omitempty"`
	Queries   []QueryReport `json:"queries" yaml:"queries"`
}

func newReport(method string, train, k int, elapsed time.Duration) *Report {
	return &Report{
		Method:    method,
		Train:     train,
		K:         k,
		ElapsedMS: elapsed.Milliseconds(),
	}
}

// Write renders r in format: "text" or any codec name.
func (r *Report) Write(w io.Writer, format string) error {
	if format != DefaultFormat {
		c, ok := codec.ByName(format)
		if !ok {
			return fmt.Errorf("unknown output format %q", format)
		}
		b, err := c.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w)
		return err
	}

	if r.Stats != nil {
		fmt.Fprintln(w, r.Stats.String())
	}
	fmt.Fprintf(w, "Nearest neighbour search (%s) took: %d ms\n", r.Method, r.ElapsedMS)

	for _, q := range r.Queries {
		fmt.Fprintf(w, "Query %d:\n", q.Query)
		for i, n := range q.Neighbors {
			if _, err := fmt.Fprintf(w, "Neighbor %d: Index = %d, Distance = %g\n", i+1, n.Index, n.Distance); err != nil {
				return err
			}
		}
	}
	return nil
}

package index

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/vectree/dataset"
	"github.com/hupe1980/vectree/internal/tree"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/vector"
)

// Splitter chooses how a tree node partitions its rows.
type Splitter = tree.Splitter

// TreeIndex is an Index backed by a binary space-partitioning tree.
// It uses a copy-on-write snapshot for lock-free concurrent reads.
type TreeIndex struct {
	kind     model.Kind
	splitter Splitter
	opts     Options

	snap    atomic.Pointer[Snapshot] // current rows and tree
	writeMu sync.Mutex               // serializes rebuilds; also guards splitter
}

var _ Index = (*TreeIndex)(nil)

// NewTreeIndex creates an empty index. The splitter is only ever called
// with writeMu held, so it need not be safe for concurrent use.
func NewTreeIndex(kind model.Kind, splitter Splitter, opts Options) (*TreeIndex, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	t := &TreeIndex{
		kind:     kind,
		splitter: splitter,
		opts:     opts,
	}

	empty, err := t.build(&dataset.Store{}, 0)
	if err != nil {
		return nil, err
	}
	t.snap.Store(empty)

	return t, nil
}

// Kind reports the split strategy.
func (t *TreeIndex) Kind() model.Kind { return t.kind }

// Options returns the options the index was created with.
func (t *TreeIndex) Options() Options { return t.opts }

// Snapshot returns the current snapshot.
func (t *TreeIndex) Snapshot() *Snapshot { return t.snap.Load() }

// Len returns the number of rows.
func (t *TreeIndex) Len() int { return t.Snapshot().Len() }

// Dim returns the row dimension, or 0 before the first row.
func (t *TreeIndex) Dim() int { return t.Snapshot().Dim() }

// Generation increases with every published rebuild.
func (t *TreeIndex) Generation() uint64 { return t.Snapshot().Generation() }

// Stats describes the current snapshot.
func (t *TreeIndex) Stats() Stats { return t.Snapshot().Stats() }

// Dump writes the current tree.
func (t *TreeIndex) Dump(w io.Writer) error { return t.Snapshot().Dump(w) }

// Search runs against the current snapshot.
func (t *TreeIndex) Search(q vector.Vector, k int) ([]model.SearchResult, error) {
	return t.Snapshot().Search(q, k)
}

// AddData appends vs and rebuilds the tree. If any vector has the wrong
// dimension nothing is added and the current snapshot stays in place.
func (t *TreeIndex) AddData(vs []vector.Vector) error {
	if len(vs) == 0 {
		return nil
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	cur := t.snap.Load()

	rows := cur.rows.Clone()
	if err := rows.Append(vs...); err != nil {
		return err
	}

	return t.publish(rows, cur.gen)
}

// RemoveData erases, for each vector in order, the first exactly equal row
// and rebuilds the tree. Vectors without a match are ignored; when nothing
// matches the current snapshot stays in place.
func (t *TreeIndex) RemoveData(vs []vector.Vector) (int, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	cur := t.snap.Load()

	rows := cur.rows.Clone()
	removed := rows.Remove(vs...)
	if removed == 0 {
		return 0, nil
	}

	if err := t.publish(rows, cur.gen); err != nil {
		return 0, err
	}
	return removed, nil
}

// MakeTree discards the current tree and builds a new one over the current
// rows. For randomized strategies this draws a fresh tree.
func (t *TreeIndex) MakeTree() error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	cur := t.snap.Load()
	return t.publish(cur.rows, cur.gen)
}

func (t *TreeIndex) publish(rows *dataset.Store, prevGen uint64) error {
	next, err := t.build(rows, prevGen+1)
	if err != nil {
		return err
	}
	t.snap.Store(next)
	return nil
}

func (t *TreeIndex) build(rows *dataset.Store, gen uint64) (*Snapshot, error) {
	tr, err := tree.Build(rows, t.opts.LeafSize, t.splitter)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		kind:   t.kind,
		rows:   rows,
		tree:   tr,
		policy: t.opts.Policy,
		gen:    gen,
	}, nil
}

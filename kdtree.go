package kdtree

import (
	"errors"
	"fmt"
	"math/bits"
	"time"
)

var (
	// ErrIndexLength is returned when the caller supplies a different number
	// of indices than points.
	ErrIndexLength = errors.New("kdtree: index count does not match point count")

	// ErrDimensions is returned when points have no coordinates, more than
	// MaxDims coordinates, or disagree on their dimensionality.
	ErrDimensions = errors.New("kdtree: invalid point dimensions")
)

// Tree is a balanced k-d tree over a static point set. It is built once and
// then answers radius and nearest-neighbor queries. A Tree is immutable
// after construction and safe for concurrent queries.
//
// The tree is stored as a complete binary tree in a flat 1-indexed array:
//   - node i has children at 2*i and 2*i+1
//   - nodes 1..n/2 are internal, n/2+1..n are leaves
//   - for even n, slot n+1 holds a sentinel so every internal node has two
//     children
type Tree[S Scalar, P Point[S], I Index] struct {
	nodes    []record[P, I] // len (n|1)+1; slot 0 unused
	n        int            // number of points
	internal int            // n / 2
	dims     int
	depth    int // number of levels
}

// New builds a tree from points. If indices is non-nil it must have one
// entry per point, and queries report those values; otherwise points are
// reported by their position in the input.
//
// New reorders points in place while partitioning. Callers must treat the
// slice as consumed. indices is copied and left untouched.
func New[S Scalar, P Point[S], I Index](points []P, indices []I, cfg Config) (*Tree[S, P, I], error) {
	if indices != nil && len(indices) != len(points) {
		return nil, fmt.Errorf("%w: %d indices for %d points", ErrIndexLength, len(indices), len(points))
	}
	ids := make([]I, len(points))
	if indices != nil {
		copy(ids, indices)
	} else {
		for i := range ids {
			ids[i] = I(i)
		}
	}
	return newTree[S](points, ids, cfg)
}

// NewFunc builds a tree from n points produced by pos. If index is non-nil,
// index(i) is reported for the i-th point instead of i. The caller's storage
// is never modified.
func NewFunc[S Scalar, P Point[S], I Index](n int, pos func(i int) P, index func(i int) I, cfg Config) (*Tree[S, P, I], error) {
	if n < 0 {
		return nil, fmt.Errorf("kdtree: point count must be >= 0, got %d", n)
	}
	points := make([]P, n)
	ids := make([]I, n)
	for i := range n {
		points[i] = pos(i)
		if index != nil {
			ids[i] = index(i)
		} else {
			ids[i] = I(i)
		}
	}
	return newTree[S](points, ids, cfg)
}

// Build builds a tree with the default config, reporting points by their
// position in the input. It panics if the points disagree on their
// dimensionality. points is reordered in place.
func Build[S Scalar, P Point[S]](points []P) *Tree[S, P, int] {
	t, err := New[S, P, int](points, nil, DefaultConfig())
	if err != nil {
		panic(err)
	}
	return t
}

func newTree[S Scalar, P Point[S], I Index](points []P, ids []I, cfg Config) (*Tree[S, P, I], error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	t := &Tree[S, P, I]{n: len(points), internal: len(points) / 2}
	if t.n == 0 {
		return t, nil
	}

	dims, err := checkDims[S](points)
	if err != nil {
		return nil, err
	}
	t.dims = dims
	t.depth = bits.Len(uint(t.n))
	if t.depth-1 > maxStack {
		return nil, fmt.Errorf("kdtree: %d points need a traversal stack of %d, capacity is %d", t.n, t.depth-1, maxStack)
	}
	t.nodes = make([]record[P, I], (t.n|1)+1)

	start := time.Now()
	b := newBuilder[S](points, ids, t.nodes, &cfg)
	lo, hi := bounds[S](points, dims)
	b.build(1, 0, t.n, lo, hi)

	if t.n%2 == 0 {
		t.nodes[t.n+1] = record[P, I]{kind: sentinelNode}
	}

	cfg.logger().Debug().
		Int("points", t.n).
		Int("dims", t.dims).
		Int("internal", t.internal).
		Int("depth", t.depth).
		Int64("parallel_tasks", b.tasks.Load()).
		Dur("elapsed", time.Since(start)).
		Msg("kdtree built")

	return t, nil
}

// checkDims returns the dimensionality shared by all points.
func checkDims[S Scalar, P Point[S]](points []P) (int, error) {
	dims := points[0].Dims()
	if dims < 1 || dims > MaxDims {
		return 0, fmt.Errorf("%w: got %d, want 1..%d", ErrDimensions, dims, MaxDims)
	}
	for i, p := range points {
		if d := p.Dims(); d != dims {
			return 0, fmt.Errorf("%w: point %d has %d dimensions, point 0 has %d", ErrDimensions, i, d, dims)
		}
	}
	return dims, nil
}

// Len returns the number of points in the tree.
func (t *Tree[S, P, I]) Len() int { return t.n }

// Dims returns the dimensionality of the points, or 0 for an empty tree.
func (t *Tree[S, P, I]) Dims() int { return t.dims }

// Depth returns the number of levels of the tree.
func (t *Tree[S, P, I]) Depth() int { return t.depth }

// Internal returns the number of internal nodes, always Len()/2.
func (t *Tree[S, P, I]) Internal() int { return t.internal }

// Position returns the i-th point in tree order, 0 <= i < Len().
func (t *Tree[S, P, I]) Position(i int) P { return t.nodes[i+1].pos }

// OriginalIndex returns the index reported for the i-th point in tree order,
// 0 <= i < Len().
func (t *Tree[S, P, I]) OriginalIndex(i int) I { return t.nodes[i+1].index }

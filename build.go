package kdtree

import (
	"math/bits"
	"slices"
	"sync"
	"sync/atomic"
)

// builder partitions points into the flat node array. Each build call owns
// the lo/hi box slices it is given until it returns; concurrent subtree
// builds always receive distinct slices.
type builder[S Scalar, P Point[S], I Index] struct {
	points    []P
	ids       []I
	nodes     []record[P, I]
	threshold int
	sem       chan struct{} // one token per extra goroutine
	tasks     atomic.Int64
}

func newBuilder[S Scalar, P Point[S], I Index](points []P, ids []I, nodes []record[P, I], cfg *Config) *builder[S, P, I] {
	return &builder[S, P, I]{
		points:    points,
		ids:       ids,
		nodes:     nodes,
		threshold: cfg.ParallelThreshold,
		sem:       make(chan struct{}, cfg.MaxParallelism-1),
	}
}

// bounds returns the per-axis min and max over points.
func bounds[S Scalar, P Point[S]](points []P, dims int) (lo, hi []S) {
	lo = make([]S, dims)
	hi = make([]S, dims)
	for d := range dims {
		lo[d] = inf[S]()
		hi[d] = -inf[S]()
	}
	for _, p := range points {
		for d := range dims {
			v := p.Coord(d)
			if v < lo[d] {
				lo[d] = v
			}
			if v > hi[d] {
				hi[d] = v
			}
		}
	}
	return lo, hi
}

// build writes points[start:end] as the subtree rooted at node id. lo and hi
// bound the points of the range.
func (b *builder[S, P, I]) build(id, start, end int, lo, hi []S) {
	n := end - start
	switch n {
	case 0:
		return
	case 1:
		b.nodes[id] = record[P, I]{pos: b.points[start], index: b.ids[start]}
		return
	}

	axis := splitAxis(lo, hi)
	leftSize := leftSubtreeSize(n)
	mid := start + leftSize
	b.selectNth(start, end, mid, axis)

	b.nodes[id] = record[P, I]{
		pos:   b.points[mid],
		index: b.ids[mid],
		axis:  uint8(axis),
		kind:  internalNode,
	}
	split := b.points[mid].Coord(axis)

	if leftSize > b.threshold && end-mid-1 > b.threshold && b.acquire() {
		leftHi := slices.Clone(hi)
		leftHi[axis] = split
		rightLo := slices.Clone(lo)
		rightLo[axis] = split

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer b.release()
			b.build(2*id, start, mid, lo, leftHi)
		}()
		b.build(2*id+1, mid+1, end, rightLo, hi)
		wg.Wait()
		return
	}

	saved := hi[axis]
	hi[axis] = split
	b.build(2*id, start, mid, lo, hi)
	hi[axis] = saved

	saved = lo[axis]
	lo[axis] = split
	b.build(2*id+1, mid+1, end, lo, hi)
	lo[axis] = saved
}

// acquire reserves a goroutine slot without blocking.
func (b *builder[S, P, I]) acquire() bool {
	select {
	case b.sem <- struct{}{}:
		b.tasks.Add(1)
		return true
	default:
		return false
	}
}

func (b *builder[S, P, I]) release() { <-b.sem }

// splitAxis returns the axis along which the box is widest. Ties go to the
// lowest axis.
func splitAxis[S Scalar](lo, hi []S) int {
	axis := 0
	widest := hi[0] - lo[0]
	for d := 1; d < len(lo); d++ {
		if w := hi[d] - lo[d]; w > widest {
			axis = d
			widest = w
		}
	}
	return axis
}

// leftSubtreeSize returns how many of n nodes belong to the left subtree of
// a complete binary tree whose last level is filled from the left.
func leftSubtreeSize(n int) int {
	full := uint(n)
	for s := 1; s < bits.UintSize; s *= 2 {
		full |= full >> s
	}
	left := int(full >> 1) // left child with a full last level
	right := left >> 1     // right child with no node on the last level
	if left+right+1 <= n {
		return left
	}
	return n - right - 1
}

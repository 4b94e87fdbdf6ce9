package kdtree

import (
	"cmp"
	"container/heap"
	"slices"
)

// KNearest returns the k points closest to query, in no particular order.
// Fewer than k are returned when the tree holds fewer points. The result is
// appended to buf[:0]; pass a buffer with capacity >= k to avoid allocating.
func (t *Tree[S, P, I]) KNearest(query P, k int, buf []Neighbor[S, P, I]) []Neighbor[S, P, I] {
	return kNearest[S, P, I](t.Search, query, k, inf[S](), buf)
}

// KNearestWithin is KNearest restricted to points with a squared distance
// below radiusSq.
func (t *Tree[S, P, I]) KNearestWithin(query P, k int, radiusSq S, buf []Neighbor[S, P, I]) []Neighbor[S, P, I] {
	return kNearest[S, P, I](t.Search, query, k, radiusSq, buf)
}

// kNearest collects the k best candidates reported by search. Once k are
// held they form a max-heap, and the radius shrinks to the worst of them.
func kNearest[S Scalar, P Point[S], I Index](
	search func(query P, radiusSq S, visit Visitor[S, P, I]),
	query P, k int, radiusSq S, buf []Neighbor[S, P, I],
) []Neighbor[S, P, I] {
	h := neighborHeap[S, P, I](buf[:0])
	if k <= 0 {
		return h
	}

	search(query, radiusSq, func(index I, pos P, distSq S, r2 *S) {
		nb := Neighbor[S, P, I]{Index: index, Pos: pos, DistSq: distSq}
		if len(h) < k {
			h = append(h, nb)
			if len(h) == k {
				heap.Init(&h)
				*r2 = h[0].DistSq
			}
			return
		}
		// Search only reports points inside the radius, so nb beats the
		// current worst.
		h[0] = nb
		heap.Fix(&h, 0)
		*r2 = h[0].DistSq
	})
	return h
}

// SortNeighbors sorts ns by ascending distance, breaking ties by index.
func SortNeighbors[S Scalar, P Point[S], I Index](ns []Neighbor[S, P, I]) {
	slices.SortFunc(ns, func(a, b Neighbor[S, P, I]) int {
		if c := cmp.Compare(a.DistSq, b.DistSq); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

// neighborHeap is a max-heap of neighbors (largest distance on top) used as a
// bounded priority queue for k-nearest queries.
type neighborHeap[S Scalar, P Point[S], I Index] []Neighbor[S, P, I]

func (h neighborHeap[S, P, I]) Len() int           { return len(h) }
func (h neighborHeap[S, P, I]) Less(i, j int) bool { return h[i].DistSq > h[j].DistSq }
func (h neighborHeap[S, P, I]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap[S, P, I]) Push(x any)        { *h = append(*h, x.(Neighbor[S, P, I])) }
func (h *neighborHeap[S, P, I]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

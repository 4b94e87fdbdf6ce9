package kdtree

// Nearest returns the point closest to query. It reports false only for an
// empty tree.
func (t *Tree[S, P, I]) Nearest(query P) (Neighbor[S, P, I], bool) {
	return nearestWithin[S, P, I](t.Search, query, inf[S]())
}

// NearestWithin returns the point closest to query among those with a
// squared distance below radiusSq.
func (t *Tree[S, P, I]) NearestWithin(query P, radiusSq S) (Neighbor[S, P, I], bool) {
	return nearestWithin[S, P, I](t.Search, query, radiusSq)
}

// NearestIndex returns the index of the point closest to query.
func (t *Tree[S, P, I]) NearestIndex(query P) (I, bool) {
	nb, ok := t.Nearest(query)
	return nb.Index, ok
}

// NearestIndexWithin returns the index of the closest point with a squared
// distance below radiusSq.
func (t *Tree[S, P, I]) NearestIndexWithin(query P, radiusSq S) (I, bool) {
	nb, ok := t.NearestWithin(query, radiusSq)
	return nb.Index, ok
}

// NearestPosition returns the position of the point closest to query.
func (t *Tree[S, P, I]) NearestPosition(query P) (P, bool) {
	nb, ok := t.Nearest(query)
	return nb.Pos, ok
}

// NearestPositionWithin returns the position of the closest point with a
// squared distance below radiusSq.
func (t *Tree[S, P, I]) NearestPositionWithin(query P, radiusSq S) (P, bool) {
	nb, ok := t.NearestWithin(query, radiusSq)
	return nb.Pos, ok
}

// NearestDistSq returns the squared distance from query to the closest point.
func (t *Tree[S, P, I]) NearestDistSq(query P) (S, bool) {
	nb, ok := t.Nearest(query)
	return nb.DistSq, ok
}

// NearestDistSqWithin returns the squared distance to the closest point with
// a squared distance below radiusSq.
func (t *Tree[S, P, I]) NearestDistSqWithin(query P, radiusSq S) (S, bool) {
	nb, ok := t.NearestWithin(query, radiusSq)
	return nb.DistSq, ok
}

// Within appends to buf[:0] every point with a squared distance to query
// below radiusSq, in traversal order.
func (t *Tree[S, P, I]) Within(query P, radiusSq S, buf []Neighbor[S, P, I]) []Neighbor[S, P, I] {
	out := buf[:0]
	t.Search(query, radiusSq, func(index I, pos P, distSq S, _ *S) {
		out = append(out, Neighbor[S, P, I]{Index: index, Pos: pos, DistSq: distSq})
	})
	return out
}

func nearestWithin[S Scalar, P Point[S], I Index](
	search func(query P, radiusSq S, visit Visitor[S, P, I]),
	query P, radiusSq S,
) (Neighbor[S, P, I], bool) {
	var best Neighbor[S, P, I]
	found := false
	search(query, radiusSq, func(index I, pos P, distSq S, r2 *S) {
		best = Neighbor[S, P, I]{Index: index, Pos: pos, DistSq: distSq}
		found = true
		*r2 = distSq
	})
	return best, found
}

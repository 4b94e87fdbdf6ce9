package kdtree

import "fmt"

// Linear answers the same queries as Tree by scanning every point. It needs
// no build step and is faster than a tree for a handful of points.
type Linear[S Scalar, P Point[S], I Index] struct {
	points []P
	ids    []I
}

// NewLinear copies points (and indices, if non-nil) into a Linear.
func NewLinear[S Scalar, P Point[S], I Index](points []P, indices []I) (*Linear[S, P, I], error) {
	if indices != nil && len(indices) != len(points) {
		return nil, fmt.Errorf("%w: %d indices for %d points", ErrIndexLength, len(indices), len(points))
	}
	if len(points) > 0 {
		if _, err := checkDims[S](points); err != nil {
			return nil, err
		}
	}
	l := &Linear[S, P, I]{
		points: make([]P, len(points)),
		ids:    make([]I, len(points)),
	}
	copy(l.points, points)
	for i := range l.ids {
		if indices != nil {
			l.ids[i] = indices[i]
		} else {
			l.ids[i] = I(i)
		}
	}
	return l, nil
}

// Len returns the number of points.
func (l *Linear[S, P, I]) Len() int { return len(l.points) }

// Search calls visit for every point with a squared distance to query below
// the current radius, in input order.
func (l *Linear[S, P, I]) Search(query P, radiusSq S, visit Visitor[S, P, I]) {
	for i, p := range l.points {
		if d2 := DistSq[S](query, p); d2 < radiusSq {
			visit(l.ids[i], p, d2, &radiusSq)
		}
	}
}

// NearestWithin returns the closest point with a squared distance below
// radiusSq.
func (l *Linear[S, P, I]) NearestWithin(query P, radiusSq S) (Neighbor[S, P, I], bool) {
	return nearestWithin[S, P, I](l.Search, query, radiusSq)
}

// KNearestWithin returns up to k closest points with a squared distance
// below radiusSq, unordered.
func (l *Linear[S, P, I]) KNearestWithin(query P, k int, radiusSq S, buf []Neighbor[S, P, I]) []Neighbor[S, P, I] {
	return kNearest[S, P, I](l.Search, query, k, radiusSq, buf)
}

package kdtree

// Searcher is the read interface shared by Tree and Linear, used by the
// batch query helpers.
type Searcher[S Scalar, P Point[S], I Index] interface {
	// Len returns the number of points.
	Len() int

	// Search calls visit for every point with a squared distance to query
	// below radiusSq. visit may shrink the radius.
	Search(query P, radiusSq S, visit Visitor[S, P, I])

	// NearestWithin returns the closest point with a squared distance below
	// radiusSq.
	NearestWithin(query P, radiusSq S) (Neighbor[S, P, I], bool)

	// KNearestWithin returns up to k closest points with a squared distance
	// below radiusSq, unordered.
	KNearestWithin(query P, k int, radiusSq S, buf []Neighbor[S, P, I]) []Neighbor[S, P, I]
}

var (
	_ Searcher[float64, Vec2[float64], int] = (*Tree[float64, Vec2[float64], int])(nil)
	_ Searcher[float64, Vec2[float64], int] = (*Linear[float64, Vec2[float64], int])(nil)
)

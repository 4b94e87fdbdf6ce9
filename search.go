package kdtree

// maxStack is the capacity of the traversal stack. It holds the internal
// ancestors of the node being visited, at most Depth()-1 of them, and a tree
// addressable by int is never deeper than 64 levels.
const maxStack = 64

// Neighbor is a point reported by a query.
type Neighbor[S Scalar, P Point[S], I Index] struct {
	Index  I
	Pos    P
	DistSq S // squared Euclidean distance to the query
}

// Visitor is called for every point closer to the query than the current
// search radius. It may shrink *radiusSq to narrow the rest of the search.
type Visitor[S Scalar, P Point[S], I Index] func(index I, pos P, distSq S, radiusSq *S)

// nodeStack is a fixed-capacity LIFO of node ids.
type nodeStack struct {
	ids [maxStack]int
	n   int
}

func (s *nodeStack) push(id int) {
	if s.n == maxStack {
		panic("kdtree: traversal stack overflow")
	}
	s.ids[s.n] = id
	s.n++
}

func (s *nodeStack) pop() int {
	s.n--
	return s.ids[s.n]
}

// Search calls visit for the points within sqrt(radiusSq) of query, near
// side of each split first. Points are reported in traversal order, not by
// distance. visit may shrink the radius, which prunes the remaining search.
func (t *Tree[S, P, I]) Search(query P, radiusSq S, visit Visitor[S, P, I]) {
	if t.n == 0 {
		return
	}

	var stack nodeStack
	t.descend(query, 1, &radiusSq, visit, &stack)

	for stack.n > 0 {
		id := stack.pop()
		nd := &t.nodes[id]
		t.visitNode(query, nd, &radiusSq, visit)

		axis := int(nd.axis)
		diff := query.Coord(axis) - nd.pos.Coord(axis)
		if diff*diff >= radiusSq {
			continue
		}
		// far side of the split
		if diff < 0 {
			t.descend(query, 2*id+1, &radiusSq, visit, &stack)
		} else {
			t.descend(query, 2*id, &radiusSq, visit, &stack)
		}
	}
}

// SearchRadius is Search with a radius instead of a squared radius.
func (t *Tree[S, P, I]) SearchRadius(query P, radius S, visit Visitor[S, P, I]) {
	t.Search(query, radius*radius, visit)
}

// descend walks from id to a leaf along the near side of each split, pushing
// the internal nodes it passes, and tests the leaf.
func (t *Tree[S, P, I]) descend(query P, id int, radiusSq *S, visit Visitor[S, P, I], stack *nodeStack) {
	for id <= t.internal {
		stack.push(id)
		nd := &t.nodes[id]
		axis := int(nd.axis)
		if query.Coord(axis) < nd.pos.Coord(axis) {
			id = 2 * id
		} else {
			id = 2*id + 1
		}
	}
	t.visitNode(query, &t.nodes[id], radiusSq, visit)
}

func (t *Tree[S, P, I]) visitNode(query P, nd *record[P, I], radiusSq *S, visit Visitor[S, P, I]) {
	if nd.kind == sentinelNode {
		return
	}
	if d2 := DistSq[S](query, nd.pos); d2 < *radiusSq {
		visit(nd.index, nd.pos, d2, radiusSq)
	}
}

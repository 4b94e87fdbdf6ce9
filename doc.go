// Package kdtree implements a balanced, array-backed k-d tree for static
// point sets.
//
// A tree is built once from a batch of points and then queried any number of
// times, from any number of goroutines, for radius searches and nearest
// neighbors. Nodes live in one flat slice laid out as a complete binary tree
// (node i has children 2i and 2i+1), so the tree holds no pointers and its
// depth is always ceil(log2(n+1)).
//
// Basic usage:
//
//	pts := []kdtree.Vec2[float64]{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}}
//	tree := kdtree.Build[float64](pts)
//	nb, ok := tree.Nearest(kdtree.Vec2[float64]{4, 4})
//	// nb.Index == 4, nb.DistSq == 2
//	nbs := tree.KNearest(kdtree.Vec2[float64]{0, 0}, 2, nil)
//	// indices {0, 4} in heap order; use SortNeighbors to order them
//
// Build reorders its input slice while partitioning. Use [NewFunc] to build
// from a position callback without touching caller storage, and [New] to
// report caller-supplied indices or tune the [Config].
//
// # Searching
//
// [Tree.Search] is the primitive every query is built on. It walks the tree
// without recursion and calls a [Visitor] for each point inside the current
// radius. The visitor may shrink the radius, which prunes the rest of the
// walk: [Tree.KNearest] keeps a bounded max-heap and shrinks the radius to
// its worst entry, the Nearest family keeps a single best.
//
// Points of any dimensionality satisfy [Point]. [Vec2], [Vec3] and [VecN]
// are provided, as are [R2] and [R3] adapters for gonum's spatial vectors.
package kdtree

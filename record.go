package kdtree

// nodeKind tags a slot of the implicit tree.
type nodeKind uint8

const (
	// leafNode has no children. Its axis is unused.
	leafNode nodeKind = iota
	// internalNode splits its subtree along axis.
	internalNode
	// sentinelNode pads an even point count to an odd one. It behaves as a
	// point at +Inf on every axis and is never reported.
	sentinelNode
)

// record is one slot of the flat node array: a point, the index it is
// reported under, and the split axis when the slot is an internal node.
type record[P any, I Index] struct {
	pos   P
	index I
	axis  uint8
	kind  nodeKind
}

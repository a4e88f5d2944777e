package trellis

// Invalidation is a bitmask of cached quantity categories. A set bit in a
// node's validity mask means the quantity is up to date.
type Invalidation uint16

const (
	// InvalidateSize covers DrawSize, including the auto-size result.
	InvalidateSize Invalidation = 1 << iota
	// InvalidatePosition covers DrawPosition.
	InvalidatePosition
	// InvalidateLocalMatrix covers the parent-space transform (anchor,
	// origin, scale, rotation, shear).
	InvalidateLocalMatrix
	// InvalidateDrawMatrix covers the screen-space transform.
	InvalidateDrawMatrix
	// InvalidateBounds covers ScreenSpaceQuad and BoundingBox.
	InvalidateBounds
	// InvalidateChildLayout covers the content area and slots handed to
	// children, and the flow placement of a flow container.
	InvalidateChildLayout
	// InvalidateColour covers DrawAlpha.
	InvalidateColour

	// InvalidateDrawInfo covers everything derived from the transform.
	InvalidateDrawInfo = InvalidateLocalMatrix | InvalidateDrawMatrix | InvalidateBounds
	// InvalidateGeometry covers every geometric category.
	InvalidateGeometry = InvalidateSize | InvalidatePosition | InvalidateDrawInfo | InvalidateChildLayout
	// InvalidateAll covers every category.
	InvalidateAll = InvalidateGeometry | InvalidateColour
)

// InvalidationSource records where an invalidation originated.
type InvalidationSource uint8

const (
	SourceSelf   InvalidationSource = iota // a property of the node itself changed
	SourceParent                           // forwarded down from the parent
	SourceChild                            // forwarded up from a child
)

// selfClosure extends flags with the categories on the same node that are
// computed from them.
func selfClosure(flags Invalidation) Invalidation {
	if flags&InvalidateSize != 0 {
		// Origin position and the child content area are functions of size.
		flags |= InvalidateLocalMatrix | InvalidateBounds | InvalidateChildLayout
	}
	if flags&InvalidatePosition != 0 {
		flags |= InvalidateLocalMatrix
	}
	if flags&InvalidateLocalMatrix != 0 {
		flags |= InvalidateDrawMatrix
	}
	if flags&InvalidateDrawMatrix != 0 {
		flags |= InvalidateBounds
	}
	return flags
}

// Invalidate marks the given categories stale on this node and returns
// whether any of them was valid before.
//
// With propagate set, newly stale categories are forwarded to every cache
// that depends on them: children whose slot, size, position or transform
// come from this node, and the parent when its auto-size or flow placement
// reads this node's size. Forwarding stops at nodes that are already stale,
// which is sound because a stale category never has valid dependents.
//
// Without propagate only this node's own caches are touched. Callers doing
// custom layout use that when they invalidate the dependents themselves.
func (n *Node) Invalidate(flags Invalidation, source InvalidationSource, propagate bool) bool {
	flags = selfClosure(flags) & n.valid
	if flags == 0 {
		return false
	}
	n.valid &^= flags
	n.stats.Invalidations[source]++
	if !propagate {
		return true
	}

	if flags&InvalidateSize != 0 && n.parent != nil {
		n.parent.onChildSizeChanged()
	}

	if flags&(InvalidateChildLayout|InvalidateDrawMatrix|InvalidateColour) == 0 {
		return true
	}
	for _, c := range n.children {
		var down Invalidation
		if flags&InvalidateChildLayout != 0 {
			down |= InvalidatePosition | InvalidateLocalMatrix
			if c.relativeSizeAxes != AxesNone {
				down |= InvalidateSize
			}
		}
		if flags&InvalidateDrawMatrix != 0 {
			down |= InvalidateDrawMatrix
		}
		if flags&InvalidateColour != 0 {
			down |= InvalidateColour
		}
		c.Invalidate(down, SourceParent, true)
	}
	return true
}

// onChildSizeChanged runs when a child's DrawSize became stale.
func (n *Node) onChildSizeChanged() {
	var flags Invalidation
	if n.autoSizeAxes != AxesNone {
		flags |= InvalidateSize
	}
	if n.mode == LayoutFlow {
		flags |= InvalidateChildLayout
	}
	if flags != 0 {
		n.Invalidate(flags, SourceChild, true)
	}
}

// invalidateParentLayout runs when a property changes that feeds the
// parent's auto-size or flow placement without necessarily changing this
// node's own computed size (transform inputs, eligibility flags). It is
// called unconditionally from setters, because this node's caches may
// already be stale while the parent's are not.
func (n *Node) invalidateParentLayout() {
	if n.parent != nil {
		n.parent.onChildSizeChanged()
	}
}

// InvalidateTree marks every category of every node in the subtree rooted
// at root stale, forcing a full recompute on the next read. Ancestors whose
// auto-size or flow placement read the subtree are invalidated too, so later
// incremental invalidations still reach them.
func InvalidateTree(root *Node) {
	invalidateSubtree(root)
	root.invalidateParentLayout()
}

func invalidateSubtree(n *Node) {
	n.valid = 0
	for _, c := range n.children {
		invalidateSubtree(c)
	}
}

// IsValid reports whether every category in flags is currently cached.
func (n *Node) IsValid(flags Invalidation) bool {
	return n.valid&flags == flags
}

// LayoutStats counts layout work on a single node.
type LayoutStats struct {
	// Invalidations counts Invalidate calls that changed something, by source.
	Invalidations [3]int
	// SizeComputations counts DrawSize recomputations.
	SizeComputations int
	// AutoSizeComputations counts auto-size passes.
	AutoSizeComputations int
	// MatrixComputations counts local matrix recomputations.
	MatrixComputations int
	// FlowComputations counts flow placement passes.
	FlowComputations int
}

// Stats returns this node's layout counters.
func (n *Node) Stats() LayoutStats {
	return n.stats
}

// ResetStats zeroes the layout counters of every node in the subtree.
func ResetStats(root *Node) {
	root.stats = LayoutStats{}
	for _, c := range root.children {
		ResetStats(c)
	}
}

// TreeStats sums the layout counters of every node in the subtree.
func TreeStats(root *Node) LayoutStats {
	s := root.stats
	for _, c := range root.children {
		cs := TreeStats(c)
		for i := range s.Invalidations {
			s.Invalidations[i] += cs.Invalidations[i]
		}
		s.SizeComputations += cs.SizeComputations
		s.AutoSizeComputations += cs.AutoSizeComputations
		s.MatrixComputations += cs.MatrixComputations
		s.FlowComputations += cs.FlowComputations
	}
	return s
}

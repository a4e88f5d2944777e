package trellis

// autoSize fills the auto-sized axes of s from the children. The other axes
// of s are final and are published in drawSize for the duration of the pass
// so that children sized relative to them can resolve.
func (n *Node) autoSize(s Vec2) Vec2 {
	n.stats.AutoSizeComputations++

	partial := s
	for _, a := range eachAxis {
		if n.autoSizeAxes.Has(a) {
			partial = partial.withAxis(a, 0)
		}
	}
	n.drawSize = partial
	content := n.requiredContentSize()

	padding := n.padding.Total()
	for _, a := range eachAxis {
		if n.autoSizeAxes.Has(a) {
			s = s.withAxis(a, content.axis(a)+padding.axis(a))
		}
	}
	return s
}

// requiredContentSize runs the mode-specific child measurement with sizing
// set, so content-area reads return the partial size.
func (n *Node) requiredContentSize() Vec2 {
	n.sizing = true
	defer func() { n.sizing = false }()

	switch n.mode {
	case LayoutFlow:
		n.ensureChildLayout()
		return n.flowExtent
	case LayoutGrid:
		return n.gridAutoContent()
	default:
		return n.requiredSlotSize(n.contentSize())
	}
}

// autoSizeEligible reports whether c takes part in n's auto-size. A child
// whose size or position is relative to an axis n computes from its
// children would depend on its own contribution, so it is left out and
// resolves against the final size instead.
func (n *Node) autoSizeEligible(c *Node) bool {
	return (c.relativeSizeAxes|c.relativePositionAxes)&n.autoSizeAxes == AxesNone
}

// requiredSlotSize returns, per axis, the smallest slot every eligible child
// fits in. slotSize holds the known (non-auto) axes.
func (n *Node) requiredSlotSize(slotSize Vec2) Vec2 {
	var req Vec2
	for _, c := range n.children {
		if !n.autoSizeEligible(c) {
			continue
		}
		r := c.requiredParentSize(slotSize)
		if !c.bypassAutoSizeAxes.Has(AxesX) {
			req.X = max(req.X, r.X)
		}
		if !c.bypassAutoSizeAxes.Has(AxesY) {
			req.Y = max(req.Y, r.Y)
		}
	}
	return req
}

// requiredParentSize returns the slot size this node needs to fit its
// transformed layout rectangle. The corners are mapped through origin,
// scale, shear and rotation, so a rotated or sheared node contributes its
// parallelogram's extent rather than size × scale. The anchor term scales
// with the slot, so each axis solves lo + a·S ≥ 0 and hi + a·S ≤ S.
func (n *Node) requiredParentSize(slotSize Vec2) Vec2 {
	size := n.DrawSize()
	pos := applyRelativeAxes(n.relativePositionAxes, n.position, slotSize)
	m := composeLocal(pos, n.originFor(size), n.scale, n.rotation, n.shear)
	box := m.ApplyRect(n.layoutRectangle(size)).AABB()

	lo := box.TopLeft()
	hi := box.BottomRight()
	var req Vec2
	for _, a := range eachAxis {
		anchor := n.anchor.axis(a)
		var r float64
		if anchor < 1 {
			r = max(r, hi.axis(a)/(1-anchor))
		}
		if anchor > 0 {
			r = max(r, -lo.axis(a)/anchor)
		}
		req = req.withAxis(a, r)
	}
	return req
}

// layoutBox returns the node's layout rectangle, transformed by everything
// but its position, in parent space. Flow placement uses it.
func (n *Node) layoutBox() Rect {
	size := n.DrawSize()
	m := composeLocal(Vec2{}, n.originFor(size), n.scale, n.rotation, n.shear)
	return m.ApplyRect(n.layoutRectangle(size)).AABB()
}

package trellis

import "math"

// computeFlow places every child of a flow container, storing positions in
// flowPositions (indexed like children) and the extent of the placed
// auto-size-eligible boxes in flowExtent.
//
// Each child is placed by its layout box (margin-inclusive, rotated,
// sheared and scaled), so the box's top-left lands on the cursor. Children
// relatively sized on an auto-sized axis would depend on the extent being
// measured; they take no space.
func (n *Node) computeFlow() {
	n.stats.FlowComputations++

	content := n.contentSize()
	wrap := math.Inf(1)
	if n.direction == FlowFull && !n.autoSizeAxes.Has(AxesX) {
		wrap = content.X
	}

	if cap(n.flowPositions) < len(n.children) {
		n.flowPositions = make([]Vec2, len(n.children))
	}
	n.flowPositions = n.flowPositions[:len(n.children)]

	var cursor, extent Vec2
	var rowHeight float64
	for i, c := range n.children {
		var box Rect
		placed := c.relativeSizeAxes&n.autoSizeAxes == AxesNone
		if placed {
			box = c.layoutBox()
		}

		var pos Vec2
		switch n.direction {
		case FlowVertical:
			pos = Vec2{-box.X, cursor.Y - box.Y}
			cursor.Y += box.Height + n.spacing.Y
		default:
			if n.direction == FlowFull && cursor.X > 0 && cursor.X+box.Width > wrap {
				cursor.X = 0
				cursor.Y += rowHeight + n.spacing.Y
				rowHeight = 0
			}
			pos = Vec2{cursor.X - box.X, cursor.Y - box.Y}
			cursor.X += box.Width + n.spacing.X
			rowHeight = max(rowHeight, box.Height)
		}
		n.flowPositions[i] = pos

		if placed {
			right := pos.X + box.X + box.Width
			bottom := pos.Y + box.Y + box.Height
			if !c.bypassAutoSizeAxes.Has(AxesX) {
				extent.X = max(extent.X, right)
			}
			if !c.bypassAutoSizeAxes.Has(AxesY) {
				extent.Y = max(extent.Y, bottom)
			}
		}
	}
	n.flowExtent = extent
}

// FlowDirection returns the flow container's direction.
func (n *Node) FlowDirection() FlowDirection {
	return n.direction
}

// SetFlowDirection changes how a flow container places its children.
func (n *Node) SetFlowDirection(d FlowDirection) {
	if n.direction == d {
		return
	}
	n.direction = d
	n.invalidateArrangement()
}

// Spacing returns the gap between flow items or grid cells.
func (n *Node) Spacing() Vec2 {
	return n.spacing
}

// SetSpacing sets the gap between flow items or grid cells.
func (n *Node) SetSpacing(v Vec2) {
	if n.spacing == v {
		return
	}
	n.spacing = v
	n.invalidateArrangement()
}

// invalidateArrangement runs when a flow or grid parameter changes.
func (n *Node) invalidateArrangement() {
	flags := InvalidateChildLayout
	if n.autoSizeAxes != AxesNone {
		flags |= InvalidateSize
	}
	n.Invalidate(flags, SourceSelf, true)
}

package trellis

// slot is the rectangle a parent hands to one child, in the parent's local
// space. Relative size, relative position and anchor resolve against it.
type slot struct {
	offset Vec2
	size   Vec2
}

// --- Content area ---

// contentSize returns the area available to children: DrawSize minus
// padding. While an auto-size pass is running on n only the non-auto axes
// hold their final value; eligible children never read the others.
func (n *Node) contentSize() Vec2 {
	s := n.drawSize
	if !n.sizing {
		s = n.DrawSize()
	}
	return Vec2{
		max(0, s.X-n.padding.Horizontal()),
		max(0, s.Y-n.padding.Vertical()),
	}
}

// ChildSize returns the content area children are laid out in.
func (n *Node) ChildSize() Vec2 {
	return n.contentSize()
}

// ensureChildLayout marks the child layout as observed and, for flow
// containers, recomputes the placement.
//
// Own size is settled first: an auto-sized flow places its children as part
// of sizing, so the placement may already be done when DrawSize returns.
// The bit is set before the flow pass so that children reading their slot
// size during the pass do not recurse.
func (n *Node) ensureChildLayout() {
	if n.valid&InvalidateChildLayout != 0 {
		return
	}
	if !n.sizing {
		n.DrawSize()
		if n.valid&InvalidateChildLayout != 0 {
			return
		}
	}
	n.valid |= InvalidateChildLayout
	if n.mode == LayoutFlow {
		n.computeFlow()
	}
}

// childSlot returns the slot of child c.
func (n *Node) childSlot(c *Node) slot {
	n.ensureChildLayout()
	content := n.contentSize()
	offset := n.padding.TopLeft()
	if n.mode == LayoutGrid {
		cell := n.cellSize(content)
		col, row := c.index%n.columns, c.index/n.columns
		offset = offset.Add(Vec2{
			float64(col) * (cell.X + n.spacing.X),
			float64(row) * (cell.Y + n.spacing.Y),
		})
		return slot{offset: offset, size: cell}
	}
	return slot{offset: offset, size: content}
}

// --- Size ---

// DrawSize returns the node's resolved size: explicit, relative to the
// parent slot, or computed from children on auto-sized axes.
func (n *Node) DrawSize() Vec2 {
	if n.valid&InvalidateSize == 0 {
		n.computeSize()
		n.valid |= InvalidateSize
	}
	return n.drawSize
}

// DrawWidth returns DrawSize().X.
func (n *Node) DrawWidth() float64 { return n.DrawSize().X }

// DrawHeight returns DrawSize().Y.
func (n *Node) DrawHeight() float64 { return n.DrawSize().Y }

func (n *Node) computeSize() {
	n.stats.SizeComputations++
	s := n.size
	if n.relativeSizeAxes != AxesNone {
		var available Vec2
		if n.parent != nil {
			available = n.parent.childSlot(n).size
		}
		s = applyRelativeAxes(n.relativeSizeAxes, n.size, available)
	}
	if n.autoSizeAxes != AxesNone {
		s = n.autoSize(s)
	}
	n.drawSize = s
}

// applyRelativeAxes scales v by available on the given axes. A missing or
// zero-size parent degenerates to zero rather than failing.
func applyRelativeAxes(axes Axes, v, available Vec2) Vec2 {
	if axes.Has(AxesX) {
		v.X *= available.X
	}
	if axes.Has(AxesY) {
		v.Y *= available.Y
	}
	return v
}

// LayoutSize returns DrawSize plus margin.
func (n *Node) LayoutSize() Vec2 {
	return n.DrawSize().Add(n.margin.Total())
}

// layoutRectangle is the margin-inclusive rectangle in local space for a
// node of the given draw size.
func (n *Node) layoutRectangle(size Vec2) Rect {
	return Rect{
		X:      -n.margin.Left,
		Y:      -n.margin.Top,
		Width:  size.X + n.margin.Horizontal(),
		Height: size.Y + n.margin.Vertical(),
	}
}

// --- Position ---

// DrawPosition returns the node's resolved position inside its slot, before
// anchor and origin are applied. Children of flow containers take the
// position assigned by the flow.
func (n *Node) DrawPosition() Vec2 {
	if n.valid&InvalidatePosition == 0 {
		n.drawPosition = n.computePosition()
		n.valid |= InvalidatePosition
	}
	return n.drawPosition
}

func (n *Node) computePosition() Vec2 {
	p := n.parent
	if p == nil {
		return applyRelativeAxes(n.relativePositionAxes, n.position, Vec2{})
	}
	if p.mode == LayoutFlow {
		p.ensureChildLayout()
		return p.flowPositions[n.index]
	}
	return applyRelativeAxes(n.relativePositionAxes, n.position, p.childSlot(n).size)
}

// AnchorPosition returns the point in the parent's local space that the
// node's origin is attached to.
func (n *Node) AnchorPosition() Vec2 {
	p := n.parent
	if p == nil {
		return Vec2{}
	}
	s := p.childSlot(n)
	if p.mode == LayoutFlow {
		return s.offset
	}
	return s.offset.Add(s.size.Mul(n.anchor))
}

// OriginPosition returns the origin point in the node's local space.
func (n *Node) OriginPosition() Vec2 {
	return n.originFor(n.DrawSize())
}

func (n *Node) originFor(size Vec2) Vec2 {
	layout := size.Add(n.margin.Total())
	return layout.Mul(n.origin).Sub(n.margin.TopLeft())
}

// --- Transforms ---

// LocalMatrix returns the transform from the node's local space to its
// parent's local space.
func (n *Node) LocalMatrix() Matrix {
	if n.valid&InvalidateLocalMatrix == 0 {
		n.stats.MatrixComputations++
		offset := n.DrawPosition().Add(n.AnchorPosition())
		n.localMatrix = composeLocal(offset, n.OriginPosition(), n.scale, n.rotation, n.shear)
		n.valid |= InvalidateLocalMatrix
	}
	return n.localMatrix
}

// DrawMatrix returns the transform from the node's local space to screen
// space.
func (n *Node) DrawMatrix() Matrix {
	if n.valid&InvalidateDrawMatrix == 0 {
		local := n.LocalMatrix()
		if n.parent != nil {
			n.drawMatrix = n.parent.DrawMatrix().Multiply(local)
		} else {
			n.drawMatrix = local
		}
		n.valid |= InvalidateDrawMatrix
	}
	return n.drawMatrix
}

// ScreenSpaceQuad returns the draw rectangle mapped to screen space. Under
// rotation or shear it is a parallelogram.
func (n *Node) ScreenSpaceQuad() Quad {
	n.ensureBounds()
	return n.quad
}

// BoundingBox returns the screen-space axis-aligned bounding box of the
// draw rectangle.
func (n *Node) BoundingBox() Rect {
	n.ensureBounds()
	return n.boundingBox
}

func (n *Node) ensureBounds() {
	if n.valid&InvalidateBounds != 0 {
		return
	}
	size := n.DrawSize()
	n.quad = n.DrawMatrix().ApplyRect(Rect{Width: size.X, Height: size.Y})
	n.boundingBox = n.quad.AABB()
	n.valid |= InvalidateBounds
}

// LayoutBounds returns the axis-aligned box of the margin-inclusive layout
// rectangle in the parent's local space.
func (n *Node) LayoutBounds() Rect {
	return n.LocalMatrix().ApplyRect(n.layoutRectangle(n.DrawSize())).AABB()
}

// --- Colour ---

// DrawAlpha returns the node's alpha multiplied by every ancestor's alpha.
func (n *Node) DrawAlpha() float64 {
	if n.valid&InvalidateColour == 0 {
		n.drawAlpha = n.alpha
		if n.parent != nil {
			n.drawAlpha *= n.parent.DrawAlpha()
		}
		n.valid |= InvalidateColour
	}
	return n.drawAlpha
}

// --- Settling ---

// UpdateLayout settles every cached quantity in the subtree so that the
// renderer and hit testing observe final values.
func UpdateLayout(root *Node) {
	root.BoundingBox()
	root.DrawAlpha()
	root.ensureChildLayout()
	for _, c := range root.children {
		UpdateLayout(c)
	}
}

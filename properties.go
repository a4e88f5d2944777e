package trellis

import (
	"errors"
	"fmt"
)

var (
	// ErrAxisConflict is returned when an axis would be both relatively
	// sized against the parent and auto-sized from the children.
	ErrAxisConflict = errors.New("axis cannot be both relatively sized and auto-sized")
	// ErrFlowManagedPosition is returned when a position is written on a
	// child of a flow container, which owns child placement.
	ErrFlowManagedPosition = errors.New("position of a flow child is managed by its container")
	// ErrLayoutMode is returned when a grid or flow parameter is written on
	// a node of another layout mode.
	ErrLayoutMode = errors.New("property does not apply to this layout mode")
)

// --- Position ---

// Position returns the node's position input.
func (n *Node) Position() Vec2 { return n.position }

// X returns Position().X.
func (n *Node) X() float64 { return n.position.X }

// Y returns Position().Y.
func (n *Node) Y() float64 { return n.position.Y }

// SetPosition sets the node's position. On relatively positioned axes the
// value is a fraction of the parent's content size.
// Panics with ErrFlowManagedPosition if the parent is a flow container.
func (n *Node) SetPosition(p Vec2) {
	if err := n.checkPosition(); err != nil {
		panic(fmt.Errorf("trellis: SetPosition on %q: %w", n.Name, err))
	}
	if n.position == p {
		return
	}
	n.position = p
	n.Invalidate(InvalidatePosition, SourceSelf, true)
	n.invalidateParentLayout()
}

// SetX sets Position().X.
func (n *Node) SetX(x float64) { n.SetPosition(Vec2{x, n.position.Y}) }

// SetY sets Position().Y.
func (n *Node) SetY(y float64) { n.SetPosition(Vec2{n.position.X, y}) }

func (n *Node) checkPosition() error {
	if n.parent != nil && n.parent.mode == LayoutFlow {
		return ErrFlowManagedPosition
	}
	return nil
}

// --- Size ---

// Size returns the node's size input. On relatively sized axes the value is
// a fraction of the parent's content size; on auto-sized axes it is ignored.
func (n *Node) Size() Vec2 { return n.size }

// Width returns Size().X.
func (n *Node) Width() float64 { return n.size.X }

// Height returns Size().Y.
func (n *Node) Height() float64 { return n.size.Y }

// SetSize sets the node's size input.
func (n *Node) SetSize(s Vec2) {
	if n.size == s {
		return
	}
	n.size = s
	n.Invalidate(InvalidateSize, SourceSelf, true)
}

// SetWidth sets Size().X.
func (n *Node) SetWidth(w float64) { n.SetSize(Vec2{w, n.size.Y}) }

// SetHeight sets Size().Y.
func (n *Node) SetHeight(h float64) { n.SetSize(Vec2{n.size.X, h}) }

// --- Transform inputs ---

// Scale returns the node's scale. Default (1, 1).
func (n *Node) Scale() Vec2 { return n.scale }

// SetScale sets the node's scale. Scale changes the transform and the
// bounding box, never DrawSize.
func (n *Node) SetScale(s Vec2) {
	if n.scale == s {
		return
	}
	n.scale = s
	n.invalidateTransform()
}

// Rotation returns the node's rotation in degrees.
func (n *Node) Rotation() float64 { return n.rotation }

// SetRotation sets the node's rotation in degrees, clockwise, around its
// origin.
func (n *Node) SetRotation(deg float64) {
	if n.rotation == deg {
		return
	}
	n.rotation = deg
	n.invalidateTransform()
}

// Shear returns the node's shear factors.
func (n *Node) Shear() Vec2 { return n.shear }

// SetShear sets the node's shear factors around its origin.
func (n *Node) SetShear(s Vec2) {
	if n.shear == s {
		return
	}
	n.shear = s
	n.invalidateTransform()
}

// Anchor returns the point of the parent's content area, as a fraction of
// its size, that the node is attached to.
func (n *Node) Anchor() Vec2 { return n.anchor }

// SetAnchor sets the node's anchor fraction.
func (n *Node) SetAnchor(a Vec2) {
	if n.anchor == a {
		return
	}
	n.anchor = a
	n.invalidateTransform()
}

// Origin returns the point of the node's layout rectangle, as a fraction of
// its size, that is placed at the anchor and that rotation and scale pivot
// around.
func (n *Node) Origin() Vec2 { return n.origin }

// SetOrigin sets the node's origin fraction.
func (n *Node) SetOrigin(o Vec2) {
	if n.origin == o {
		return
	}
	n.origin = o
	n.invalidateTransform()
}

// Margin returns the node's outer margin.
func (n *Node) Margin() MarginPadding { return n.margin }

// SetMargin sets the node's outer margin. The margin pushes the draw
// rectangle away from its origin and takes space in the parent's layout.
func (n *Node) SetMargin(m MarginPadding) {
	if n.margin == m {
		return
	}
	n.margin = m
	n.invalidateTransform()
}

func (n *Node) invalidateTransform() {
	n.Invalidate(InvalidateLocalMatrix, SourceSelf, true)
	n.invalidateParentLayout()
}

// --- Container inputs ---

// Padding returns the node's inner padding.
func (n *Node) Padding() MarginPadding { return n.padding }

// SetPadding sets the node's inner padding. Padding shrinks the content
// area for children and, on auto-sized axes, adds to the computed size.
func (n *Node) SetPadding(p MarginPadding) {
	if n.padding == p {
		return
	}
	n.padding = p
	flags := InvalidateChildLayout
	if n.autoSizeAxes != AxesNone {
		flags |= InvalidateSize
	}
	n.Invalidate(flags, SourceSelf, true)
}

// RelativeSizeAxes returns the axes on which Size is a fraction of the
// parent's content size.
func (n *Node) RelativeSizeAxes() Axes { return n.relativeSizeAxes }

// SetRelativeSizeAxes sets the relatively sized axes.
// Panics with ErrAxisConflict if an axis is also auto-sized.
func (n *Node) SetRelativeSizeAxes(a Axes) {
	if err := checkAxes(a, n.autoSizeAxes); err != nil {
		panic(fmt.Errorf("trellis: SetRelativeSizeAxes(%v) on %q: %w", a, n.Name, err))
	}
	if n.relativeSizeAxes == a {
		return
	}
	n.relativeSizeAxes = a
	n.Invalidate(InvalidateSize, SourceSelf, true)
	n.invalidateParentLayout()
}

// RelativePositionAxes returns the axes on which Position is a fraction of
// the parent's content size.
func (n *Node) RelativePositionAxes() Axes { return n.relativePositionAxes }

// SetRelativePositionAxes sets the relatively positioned axes.
func (n *Node) SetRelativePositionAxes(a Axes) {
	if n.relativePositionAxes == a {
		return
	}
	n.relativePositionAxes = a
	n.Invalidate(InvalidatePosition, SourceSelf, true)
	n.invalidateParentLayout()
}

// AutoSizeAxes returns the axes on which the node's size is computed from
// its children.
func (n *Node) AutoSizeAxes() Axes { return n.autoSizeAxes }

// SetAutoSizeAxes sets the auto-sized axes.
// Panics with ErrAxisConflict if an axis is also relatively sized.
func (n *Node) SetAutoSizeAxes(a Axes) {
	if err := checkAxes(n.relativeSizeAxes, a); err != nil {
		panic(fmt.Errorf("trellis: SetAutoSizeAxes(%v) on %q: %w", a, n.Name, err))
	}
	if n.autoSizeAxes == a {
		return
	}
	n.autoSizeAxes = a
	n.Invalidate(InvalidateSize|InvalidateChildLayout, SourceSelf, true)
}

// BypassAutoSizeAxes returns the axes on which this node is left out of its
// parent's auto-size.
func (n *Node) BypassAutoSizeAxes() Axes { return n.bypassAutoSizeAxes }

// SetBypassAutoSizeAxes sets the axes on which this node does not
// contribute to the parent's auto-size.
func (n *Node) SetBypassAutoSizeAxes(a Axes) {
	if n.bypassAutoSizeAxes == a {
		return
	}
	n.bypassAutoSizeAxes = a
	n.invalidateParentLayout()
}

func checkAxes(relative, auto Axes) error {
	if relative&auto != AxesNone {
		return fmt.Errorf("%v: %w", relative&auto, ErrAxisConflict)
	}
	return nil
}

// --- Presentation ---

// Alpha returns the node's own alpha.
func (n *Node) Alpha() float64 { return n.alpha }

// SetAlpha sets the node's alpha. Children inherit it multiplicatively.
func (n *Node) SetAlpha(a float64) {
	if n.alpha == a {
		return
	}
	n.alpha = a
	n.Invalidate(InvalidateColour, SourceSelf, true)
}

// Visible reports whether the node and its subtree are drawn and
// hit-testable. Hidden nodes still take part in layout.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides the node.
func (n *Node) SetVisible(v bool) { n.visible = v }

// Masking reports whether the node clips its children to its draw rectangle.
func (n *Node) Masking() bool { return n.masking }

// SetMasking enables or disables child clipping.
func (n *Node) SetMasking(m bool) { n.masking = m }
